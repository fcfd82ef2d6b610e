package entitlements

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
)

func tableChunk(id string, rows [][]string) domain.Chunk {
	return domain.Chunk{
		ID:          id,
		Kind:        domain.ChunkTable,
		SectionPath: []string{"SCHEDULE A"},
		Heading:     "SCHEDULE A",
		Table:       &domain.Table{Rows: rows},
		PageStart:   8,
		PageEnd:     8,
	}
}

func proseChunk(id, text string) domain.Chunk {
	return domain.Chunk{
		ID:          id,
		Kind:        domain.ChunkParagraph,
		SectionPath: []string{"2. LICENSE GRANT"},
		Text:        text,
		PageStart:   3,
		PageEnd:     3,
	}
}

func set(chunks ...domain.Chunk) *domain.ChunkSet {
	return &domain.ChunkSet{DocID: "doc-1", Chunks: chunks}
}

func TestExtractLicensedProgramsTable(t *testing.T) {
	s := set(tableChunk("c1", [][]string{
		{"Program", "Metric", "Qty", "Notes"},
		{"Oracle WebLogic Server", "Processor", "6", "production use only"},
	}))

	res, err := NewEngine().Extract(context.Background(), s)
	require.NoError(t, err)

	require.Len(t, res.Entitlements.Tables, 1)
	tbl := res.Entitlements.Tables[0]
	assert.Equal(t, domain.TableLicensedPrograms, tbl.TableType)
	assert.Equal(t, []string{"Program", "Metric", "Qty", "Notes"}, tbl.Headers)
	assert.Equal(t, "SCHEDULE A", tbl.Title)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, "Oracle WebLogic Server", tbl.Rows[0]["product"])

	require.Len(t, res.Entitlements.Products, 1)
	p := res.Entitlements.Products[0]
	assert.Equal(t, "Oracle WebLogic Server", p.Name)
	assert.Equal(t, "Processor", p.Metric)
	require.NotNil(t, p.Quantity)
	assert.Equal(t, 6, *p.Quantity)
	assert.Equal(t, domain.SourceTable, p.Source)
	assert.GreaterOrEqual(t, p.Confidence, 0.9)
	assert.Equal(t, domain.EntitlementsOK, res.Entitlements.Status)
}

func TestExtractContinuationRowAppendsRestrictions(t *testing.T) {
	s := set(tableChunk("c1", [][]string{
		{"Program", "Metric", "Qty", "Notes"},
		{"Oracle WebLogic Server", "Processor", "6", ""},
		{"", "", "", "excludes disaster recovery environments"},
	}))

	res, err := NewEngine().Extract(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, res.Entitlements.Products, 1)
	p := res.Entitlements.Products[0]
	require.Len(t, p.Restrictions, 1)
	assert.Contains(t, p.Restrictions[0], "disaster recovery")
}

func TestExtractHeaderOnSecondRow(t *testing.T) {
	s := set(tableChunk("c1", [][]string{
		{"Licensed Programs"},
		{"Product", "Metric", "Quantity"},
		{"WidgetDB", "Named User Plus", "100"},
	}))

	res, err := NewEngine().Extract(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, res.Entitlements.Products, 1)
	assert.Equal(t, "WidgetDB", res.Entitlements.Products[0].Name)
	assert.Equal(t, "Named User Plus", res.Entitlements.Products[0].Metric)
}

func TestExtractHeaderlessTable(t *testing.T) {
	s := set(tableChunk("c1", [][]string{
		{"WidgetDB", "4"},
		{"WidgetCache", "2"},
	}))

	res, err := NewEngine().Extract(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, res.Entitlements.Tables, 1)
	tbl := res.Entitlements.Tables[0]
	assert.Equal(t, []string{"col_1", "col_2"}, tbl.Headers)
	assert.InDelta(t, 0.6, tbl.Confidence, 0.001)

	// Without a recognised product column the first cell names the row and
	// the numeric cell supplies the quantity, at reduced confidence.
	require.Len(t, res.Entitlements.Products, 2)
	p := res.Entitlements.Products[0]
	assert.Equal(t, "WidgetDB", p.Name)
	require.NotNil(t, p.Quantity)
	assert.Equal(t, 4, *p.Quantity)
	assert.Empty(t, p.Metric)
	assert.InDelta(t, 0.5, p.Confidence, 0.001)
	assert.Equal(t, "WidgetCache", res.Entitlements.Products[1].Name)
}

func TestExtractUnparseableQuantityKeepsRaw(t *testing.T) {
	s := set(tableChunk("c1", [][]string{
		{"Program", "Metric", "Qty"},
		{"WidgetDB", "Processor", "Unlimited"},
	}))

	res, err := NewEngine().Extract(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, res.Entitlements.Products, 1)
	p := res.Entitlements.Products[0]
	assert.Nil(t, p.Quantity)
	assert.Equal(t, "Unlimited", p.QuantityRaw)
}

func TestExtractProseProduct(t *testing.T) {
	s := set(proseChunk("c1",
		"Customer is licensed to use WidgetDB Enterprise for up to 50 Named Users during the subscription term."))

	res, err := NewEngine().Extract(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, res.Entitlements.Products, 1)

	p := res.Entitlements.Products[0]
	assert.Equal(t, "WidgetDB Enterprise", p.Name)
	assert.Equal(t, "Named User", p.Metric)
	require.NotNil(t, p.Quantity)
	assert.Equal(t, 50, *p.Quantity)
	assert.Contains(t, p.QuantityRaw, "50")
	assert.Equal(t, domain.SourceProse, p.Source)
	assert.InDelta(t, 0.85, p.Confidence, 0.001)
}

func TestExtractProseRequiresProductName(t *testing.T) {
	s := set(proseChunk("c1",
		"the licensee is entitled to 50 seats under this agreement."))

	res, err := NewEngine().Extract(context.Background(), s)
	require.NoError(t, err)
	assert.Empty(t, res.Entitlements.Products)
	assert.Equal(t, domain.EntitlementsNotFound, res.Entitlements.Status)
}

func TestExtractOrderFormReferenceWhenNoProducts(t *testing.T) {
	s := set(proseChunk("c1",
		"entitlements are set out in the applicable Order Form."))

	res, err := NewEngine().Extract(context.Background(), s)
	require.NoError(t, err)
	assert.Empty(t, res.Entitlements.Products)
	assert.Equal(t, domain.EntitlementsNotFound, res.Entitlements.Status)

	require.Len(t, res.Entitlements.References, 1)
	ref := res.Entitlements.References[0]
	assert.Equal(t, domain.RefOrderForm, ref.RefType)
	assert.InDelta(t, 0.6, ref.Confidence, 0.001)
	require.Len(t, ref.Evidence, 1)
	assert.Equal(t, "c1", ref.Evidence[0].ChunkID)
}

func TestExtractReferenceTypes(t *testing.T) {
	tests := []struct {
		text string
		want domain.RefType
	}{
		{"quantities are specified in the ordering document.", domain.RefOrderingDocument},
		{"services are described in the applicable Statement of Work.", domain.RefSOW},
		{"as set forth in the Master Services Agreement.", domain.RefMSA},
		{"support levels are set out in the Support Schedule.", domain.RefSupportSchedule},
	}
	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			res, err := NewEngine().Extract(context.Background(), set(proseChunk("c1", tt.text)))
			require.NoError(t, err)
			require.NotEmpty(t, res.Entitlements.References)
			assert.Equal(t, tt.want, res.Entitlements.References[0].RefType)
		})
	}
}

func TestExtractDuplicateReferencesCollapse(t *testing.T) {
	s := set(
		proseChunk("c1", "entitlements are set out in the applicable Order Form."),
		proseChunk("c2", "fees are specified in the Order Form."),
	)

	res, err := NewEngine().Extract(context.Background(), s)
	require.NoError(t, err)
	assert.Len(t, res.Entitlements.References, 1)
}

func TestExtractEmptyChunkSet(t *testing.T) {
	_, err := NewEngine().Extract(context.Background(), set())
	assert.ErrorIs(t, err, domain.ErrNoChunks)
}

func TestExtractEvidenceGateDropsBadPages(t *testing.T) {
	c := tableChunk("c1", [][]string{
		{"Program", "Metric", "Qty"},
		{"WidgetDB", "Processor", "4"},
	})
	c.PageStart = 0
	c.PageEnd = 0

	res, err := NewEngine().Extract(context.Background(), set(c))
	require.NoError(t, err)
	assert.Empty(t, res.Entitlements.Tables)
	assert.Empty(t, res.Entitlements.Products)
	assert.Equal(t, 2, res.Dropped)
}

func TestParseQuantity(t *testing.T) {
	q := parseQuantity("1,000 units")
	require.NotNil(t, q)
	assert.Equal(t, 1000, *q)

	assert.Nil(t, parseQuantity("Unlimited"))
}

func TestParseTerm(t *testing.T) {
	term := parseTerm("2026-01-01 to 2028-12-31")
	require.NotNil(t, term)
	assert.Equal(t, "2026-01-01", term.Start)
	assert.Equal(t, "2028-12-31", term.End)
	assert.Equal(t, "2026-01-01 to 2028-12-31", term.Raw)

	assert.Nil(t, parseTerm(""))
}

func TestCanonicalColumn(t *testing.T) {
	assert.Equal(t, "product", canonicalColumn("Program"))
	assert.Equal(t, "product", canonicalColumn("Licensed Programs"))
	assert.Equal(t, "quantity", canonicalColumn("Qty"))
	assert.Equal(t, "metric", canonicalColumn("License Metric"))
	assert.Equal(t, "restrictions", canonicalColumn("Notes"))
	assert.Equal(t, "", canonicalColumn("Mystery Column"))
}

func TestExtractCancelledContextReturnsError(t *testing.T) {
	s := set(tableChunk("c1", [][]string{
		{"Program", "Metric", "Qty"},
		{"WidgetDB", "Processor", "4"},
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := NewEngine().Extract(ctx, s)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, res)
}
