package reconcile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/pkg/deadline"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testOptions = Options{PageSize: 5, StoreTimeout: time.Second, LeaseTTL: time.Minute}

func TestSweep_SendsEligibleRecordsOnce(t *testing.T) {
	store := &fakeStore{}
	store.add("a", "Weekly Sync", "Plan to ship Friday")
	store.add("b", "Retro", "Went well")
	sender := &fakeSender{}
	sweeper := NewSweeper(store, sender, nil, testOptions, nil)

	res, err := sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Processed)
	assert.Equal(t, 2, sender.count())
	assert.True(t, store.sent("a"))
	assert.True(t, store.sent("b"))
	assert.Equal(t, "Processed 2 meeting summaries", res.Message())

	first := sender.sent[0]
	assert.Equal(t, "Weekly Sync", first.MeetingName)
	assert.Equal(t, "Plan to ship Friday", first.Summary)
	assert.Equal(t, "• Ship feature (Owner: Alice)", first.ActionItems)
	assert.Equal(t, "https://www.notion.so/a", first.RecordURL)

	// second sweep over the same set dispatches nothing
	res, err = sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Processed)
	assert.Equal(t, 2, sender.count())
	assert.Equal(t, "No unsent meeting summaries found", res.Message())
}

func TestSweep_NeverDispatchesIncompleteRecords(t *testing.T) {
	store := &fakeStore{}
	store.add("no-name", "", "has summary")
	store.add("no-summary", "Standup", "   ")
	sender := &fakeSender{}
	sweeper := NewSweeper(store, sender, nil, testOptions, nil)

	for i := 0; i < 3; i++ {
		res, err := sweeper.Sweep(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, res.Skipped)
		assert.Equal(t, 0, res.Processed)
	}
	assert.Equal(t, 0, sender.count())
	assert.Equal(t, 0, store.markCalls)
	assert.False(t, store.sent("no-name"))
}

func TestSweep_SkipsDuplicateIDsWithinOneSweep(t *testing.T) {
	store := &fakeStore{duplicate: true}
	store.add("a", "Weekly Sync", "Plan")
	sender := &fakeSender{}
	sweeper := NewSweeper(store, sender, nil, testOptions, nil)

	res, err := sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Processed)
	assert.Equal(t, 1, sender.count())
	assert.Len(t, res.Records, 1)
}

func TestSweep_FailedDispatchStaysEligible(t *testing.T) {
	store := &fakeStore{}
	store.add("a", "Weekly Sync", "Plan")
	sender := &fakeSender{fail: true}
	sweeper := NewSweeper(store, sender, nil, testOptions, nil)

	res, err := sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 0, store.markCalls)
	assert.False(t, store.sent("a"))
	assert.Equal(t, StatusFailed, res.Records[0].Status)

	sender.fail = false
	res, err = sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Processed)
	assert.True(t, store.sent("a"))
}

func TestSweep_MarkFailureIsReportedAndSweepContinues(t *testing.T) {
	store := &fakeStore{markErr: errors.New("503 from store")}
	store.add("a", "One", "s1")
	store.add("b", "Two", "s2")
	sender := &fakeSender{}
	sweeper := NewSweeper(store, sender, nil, testOptions, nil)

	res, err := sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Failed)
	assert.Equal(t, 2, sender.count())
	assert.Equal(t, StatusMarkFailed, res.Records[1].Status)
}

func TestSweep_RespectsPageSize(t *testing.T) {
	store := &fakeStore{}
	for _, id := range []string{"a", "b", "c"} {
		store.add(id, "Meeting "+id, "summary")
	}
	opts := testOptions
	opts.PageSize = 2
	sweeper := NewSweeper(store, &fakeSender{}, nil, opts, nil)

	res, err := sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Processed)
	assert.True(t, res.HasMore)

	res, err = sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Processed)
	assert.False(t, res.HasMore)
}

func TestSweep_QueryTimeout(t *testing.T) {
	store := &fakeStore{queryDelay: time.Second}
	opts := testOptions
	opts.StoreTimeout = 10 * time.Millisecond
	sweeper := NewSweeper(store, &fakeSender{}, nil, opts, nil)

	_, err := sweeper.Sweep(context.Background())
	require.Error(t, err)
	assert.True(t, deadline.IsTimeout(err))
}

func TestSweep_OverallTimeoutStopsDispatch(t *testing.T) {
	store := &fakeStore{}
	store.add("a", "Weekly Sync", "Plan")
	store.add("b", "Retro", "Went well")
	store.add("c", "Planning", "Next sprint")
	sender := &fakeSender{block: true}
	opts := testOptions
	opts.Timeout = 20 * time.Millisecond
	sweeper := NewSweeper(store, sender, nil, opts, nil)

	start := time.Now()
	res, err := sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second)

	assert.Equal(t, 1, sender.count())
	assert.Equal(t, 1, res.Failed)
	assert.True(t, res.HasMore)
	require.Len(t, res.Records, 1)
	assert.Equal(t, StatusFailed, res.Records[0].Status)
	assert.False(t, store.sent("a"))
}

func TestSweep_EmptyPageFromStore(t *testing.T) {
	store := &nilPageStore{}
	sender := &fakeSender{}
	sweeper := NewSweeper(store, sender, nil, testOptions, nil)

	res, err := sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res.Records)
	assert.False(t, res.HasMore)
	assert.Equal(t, 0, sender.count())
	assert.Equal(t, "No unsent meeting summaries found", res.Message())
}

func TestSweep_LeaseHeldElsewhere(t *testing.T) {
	store := &fakeStore{}
	store.add("a", "Weekly Sync", "Plan")
	lease := &fakeLease{}
	ok, err := lease.Acquire(context.Background(), LeaseKey, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	sender := &fakeSender{}
	sweeper := NewSweeper(store, sender, lease, testOptions, nil)

	_, err = sweeper.Sweep(context.Background())
	assert.ErrorIs(t, err, entities.ErrSweepInProgress)
	assert.Equal(t, 0, sender.count())

	require.NoError(t, lease.Release(context.Background(), LeaseKey))
	res, err := sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Processed)

	// released again after the sweep
	ok, err = lease.Acquire(context.Background(), LeaseKey, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSweep_DryRunDoesNotDispatch(t *testing.T) {
	store := &fakeStore{}
	store.add("a", "Weekly Sync", "Plan")
	store.add("b", "", "Plan")
	sender := &fakeSender{}
	sweeper := NewSweeper(store, sender, nil, testOptions, nil)

	res, err := sweeper.DryRun(context.Background())
	require.NoError(t, err)
	assert.True(t, res.DryRun)
	assert.Equal(t, 0, sender.count())
	assert.Equal(t, 0, store.markCalls)
	require.Len(t, res.Records, 2)
	assert.Equal(t, StatusReady, res.Records[0].Status)
	assert.Equal(t, StatusIncomplete, res.Records[1].Status)
	assert.Equal(t, "1 of 2 unsent meeting summaries ready to send", res.Message())
}
