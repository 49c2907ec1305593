package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/Veraticus/work-order-flow/internal/common"
	"github.com/Veraticus/work-order-flow/internal/model"
	"github.com/Veraticus/work-order-flow/internal/service"
	"github.com/Veraticus/work-order-flow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answerByDescription(prompt string) (string, error) {
	switch {
	case strings.Contains(prompt, "Loading fill"):
		return testutil.SampleAE3Response, nil
	case strings.Contains(prompt, "Sod"):
		return testutil.SampleAeonResponse, nil
	case strings.Contains(prompt, "flaky"):
		return "", common.ErrOracleFailed
	}
	return "Nothing recognizable.", nil
}

func TestPipeline_Categorize(t *testing.T) {
	ae3 := testutil.NewWorkOrderBuilder().WithNumber("1").Build()
	aeon := testutil.NewWorkOrderBuilder().
		WithNumber("2").
		WithCompany("aeon landscaping").
		WithDescription("Sod block 4, settlement repairs lots 12 and 14").
		Build()
	unknown := testutil.NewWorkOrderBuilder().WithNumber("3").WithCompany("Acme Paving").Build()
	blank := testutil.NewWorkOrderBuilder().WithNumber("4").WithDescription(model.Placeholder).Build()

	db := testutil.SetupTestDB(t, ae3, aeon, unknown, blank)
	oracle := &fakeOracle{answer: answerByDescription}
	p := newTestPipeline(t, db, nil, oracle, Options{Workers: 3})

	stats, err := p.Categorize(context.Background(), "cat-1")
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 3, stats.Processed)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 0, stats.Failed)
	assert.Equal(t, 2, oracle.callCount(), "unrouted orders never reach the oracle")

	got := db.MustGetCategorization(ae3.ID)
	assert.Equal(t, "ae3", got.Profile)
	assert.Equal(t, []model.CategoryPair{
		{Label: "Loading Fill To Lots", Locations: "Lot 67, Lot 68"},
		{Label: "Miscellaneous(Digging A Trench)", Locations: model.NotSpecified},
	}, got.Entries)
	assert.Equal(t, fixedNow, got.CategorizedAt.UTC())

	got = db.MustGetCategorization(aeon.ID)
	assert.Equal(t, "aeon", got.Profile)
	require.Len(t, got.Entries, 3)
	assert.Equal(t, "Settlement Repairs1", got.Entries[2].Label)

	got = db.MustGetCategorization(unknown.ID)
	assert.Equal(t, "Service: Miscellaneous(No categorizer for Acme Paving)\nBlocks/Lots/Units: Not specified", got.Text)
	require.Len(t, got.Caveats, 1)
	assert.Equal(t, model.CaveatUnrouted, got.Caveats[0].Kind)

	_, err = db.Storage.GetCategorization(context.Background(), blank.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	run, err := db.Storage.GetLatestRun(context.Background(), model.StageCategorize)
	require.NoError(t, err)
	assert.Equal(t, "cat-1", run.ID)
	assert.Equal(t, 3, run.Processed)
}

func TestPipeline_Categorize_PromptCarriesProfile(t *testing.T) {
	order := testutil.NewWorkOrderBuilder().Build()
	db := testutil.SetupTestDB(t, order)
	oracle := &fakeOracle{answer: answerByDescription}
	p := newTestPipeline(t, db, nil, oracle, Options{})

	_, err := p.Categorize(context.Background(), "cat-prompt")
	require.NoError(t, err)

	require.Equal(t, 1, oracle.callCount())
	prompt := oracle.prompts[0]
	assert.Contains(t, prompt, "Haul To Stockpile")
	assert.True(t, strings.HasSuffix(prompt, "Input: Loading fill from stockpile"))
}

func TestPipeline_Categorize_EmptyAndFailed(t *testing.T) {
	empty := testutil.NewWorkOrderBuilder().WithNumber("1").WithDescription("Miscellaneous cleanup").Build()
	flaky := testutil.NewWorkOrderBuilder().WithNumber("2").WithDescription("flaky request").Build()

	db := testutil.SetupTestDB(t, empty, flaky)
	p := newTestPipeline(t, db, nil, &fakeOracle{answer: answerByDescription}, Options{})

	stats, err := p.Categorize(context.Background(), "cat-2")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Processed)
	assert.Equal(t, 1, stats.Empty)
	assert.Equal(t, 1, stats.Failed)

	got := db.MustGetCategorization(empty.ID)
	assert.Equal(t, model.NoCategorization, got.Text)
	assert.True(t, got.IsEmpty())

	// Failed orders stay uncategorized and are picked up by the next run.
	pending, err := db.Storage.GetWorkOrders(context.Background(), service.WorkOrderFilter{Uncategorized: true})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, flaky.ID, pending[0].ID)
}

func TestPipeline_Categorize_NothingPending(t *testing.T) {
	db := testutil.SetupTestDB(t)
	p := newTestPipeline(t, db, nil, &fakeOracle{answer: answerByDescription}, Options{})

	_, err := p.Categorize(context.Background(), "cat-none")
	assert.ErrorIs(t, err, common.ErrNoDocuments)
}

func TestPipeline_Categorize_RequiresOracle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	p := newTestPipeline(t, db, nil, nil, Options{})

	_, err := p.Categorize(context.Background(), "cat-x")
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestPipeline_CategorizeOrder_Unrouted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	p := newTestPipeline(t, db, nil, nil, Options{})

	order := testutil.NewWorkOrderBuilder().WithCompany("Nobody Inc").Build()
	res, err := p.CategorizeOrder(context.Background(), order)
	require.NoError(t, err)
	assert.Equal(t, "Miscellaneous(No categorizer for Nobody Inc)", res.Map.Labels()[0])
}

func TestPipeline_CategorizeOrder_UnroutedKeepsRawCompany(t *testing.T) {
	db := testutil.SetupTestDB(t)
	p := newTestPipeline(t, db, nil, nil, Options{})

	order := testutil.NewWorkOrderBuilder().WithCompany("Nobody Inc").Build()
	order = p.corrector.Apply(order)
	require.Equal(t, model.Placeholder, order.CompanyName)

	res, err := p.CategorizeOrder(context.Background(), order)
	require.NoError(t, err)
	assert.Equal(t, "Miscellaneous(No categorizer for Nobody Inc)", res.Map.Labels()[0])
}
