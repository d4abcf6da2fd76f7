package registry_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"driverhub/internal/apperr"
	"driverhub/internal/domain"
	"driverhub/internal/service/registry"
	testlog "driverhub/internal/testutil"
)

func newRegistry() *registry.Registry {
	return registry.New(nil)
}

func pendingDelivery(id string) domain.Delivery {
	return domain.Delivery{
		ID:      id,
		OrderID: "order-" + id,
		Status:  domain.StatusPending,
	}
}

func TestRegistry_Add_DuplicateKeepsFirstFields(t *testing.T) {
	t.Parallel()

	r := newRegistry()

	first := pendingDelivery("DEL-010")
	first.Customer = "Alice"
	r.Add(first)

	second := pendingDelivery("DEL-010")
	second.Customer = "Bob"
	second.Dropoff = "elsewhere"
	r.Add(second)

	require.Equal(t, 1, r.Len())
	got, err := r.Get("DEL-010")
	require.NoError(t, err)
	require.Equal(t, "Alice", got.Customer)
	require.Empty(t, got.Dropoff)
}

func TestRegistry_Add_DefaultsEmptyStatusToPending(t *testing.T) {
	t.Parallel()

	r := newRegistry()
	r.Add(domain.Delivery{ID: "DEL-1"})

	got, err := r.Get("DEL-1")
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, got.Status)
}

func TestRegistry_Transition_HappyPath(t *testing.T) {
	t.Parallel()

	r := newRegistry()
	r.Add(pendingDelivery("DEL-1"))

	for _, next := range []domain.DeliveryStatus{
		domain.StatusPickedUp,
		domain.StatusInProgress,
		domain.StatusDelivered,
	} {
		require.NoError(t, r.Transition("DEL-1", next))
		got, err := r.Get("DEL-1")
		require.NoError(t, err)
		require.Equal(t, next, got.Status)
	}
}

func TestRegistry_Transition_SkipsStagesForward(t *testing.T) {
	t.Parallel()

	r := newRegistry()
	r.Add(pendingDelivery("DEL-1"))

	// dashboard vocabulary has no picked_up stage
	require.NoError(t, r.Transition("DEL-1", domain.StatusInProgress))
	got, _ := r.Get("DEL-1")
	require.Equal(t, domain.StatusInProgress, got.Status)
}

func TestRegistry_Transition_NotFound(t *testing.T) {
	t.Parallel()

	r := newRegistry()
	err := r.Transition("DEL-010", domain.StatusInProgress)
	require.ErrorIs(t, err, apperr.ErrNotFound)
	require.Zero(t, r.Len())
}

func TestRegistry_Transition_TerminalIsUnchanged(t *testing.T) {
	t.Parallel()

	for _, terminal := range []domain.DeliveryStatus{
		domain.StatusDelivered,
		domain.StatusFailed,
		domain.StatusCancelled,
	} {
		r := newRegistry()
		r.Add(pendingDelivery("DEL-1"))
		require.NoError(t, r.Transition("DEL-1", terminal))

		for _, next := range []domain.DeliveryStatus{
			domain.StatusPending,
			domain.StatusPickedUp,
			domain.StatusInProgress,
			domain.StatusDelivered,
			domain.StatusFailed,
		} {
			require.NoError(t, r.Transition("DEL-1", next))
			got, err := r.Get("DEL-1")
			require.NoError(t, err)
			require.Equal(t, terminal, got.Status, "terminal %s must not move to %s", terminal, next)
		}
	}
}

func TestRegistry_Transition_SameStatusIdempotent(t *testing.T) {
	t.Parallel()

	r := newRegistry()
	r.Add(pendingDelivery("DEL-1"))

	require.NoError(t, r.Transition("DEL-1", domain.StatusPending))
	require.NoError(t, r.Transition("DEL-1", domain.StatusPickedUp))
	require.NoError(t, r.Transition("DEL-1", domain.StatusPickedUp))

	got, _ := r.Get("DEL-1")
	require.Equal(t, domain.StatusPickedUp, got.Status)
}

func TestRegistry_Transition_BackwardRejected(t *testing.T) {
	t.Parallel()

	r := newRegistry()
	r.Add(pendingDelivery("DEL-1"))
	require.NoError(t, r.Transition("DEL-1", domain.StatusInProgress))

	err := r.Transition("DEL-1", domain.StatusPending)
	require.ErrorIs(t, err, apperr.ErrInvalidTransition)

	got, _ := r.Get("DEL-1")
	require.Equal(t, domain.StatusInProgress, got.Status)
}

func TestRegistry_Transition_FailedFromAnyNonTerminal(t *testing.T) {
	t.Parallel()

	for _, from := range []domain.DeliveryStatus{
		domain.StatusPending,
		domain.StatusPickedUp,
		domain.StatusInProgress,
	} {
		r := newRegistry()
		d := pendingDelivery("DEL-1")
		d.Status = from
		r.Add(d)

		require.NoError(t, r.Transition("DEL-1", domain.StatusFailed))
		got, _ := r.Get("DEL-1")
		require.Equal(t, domain.StatusFailed, got.Status)
	}
}

func TestRegistry_Transition_InvalidStatusValue(t *testing.T) {
	t.Parallel()

	r := newRegistry()
	r.Add(pendingDelivery("DEL-1"))
	require.ErrorIs(t, r.Transition("DEL-1", "teleported"), apperr.ErrInvalid)
}

func TestRegistry_List_InsertionOrderAndFilters(t *testing.T) {
	t.Parallel()

	r := newRegistry()
	batch := &domain.BatchRef{ID: "B-1", Stop: 1, TotalStops: 2}

	a := pendingDelivery("DEL-a")
	a.Batch = batch
	b := pendingDelivery("DEL-b")
	c := pendingDelivery("DEL-c")

	r.Add(a)
	r.Add(b)
	r.Add(c)
	require.NoError(t, r.Transition("DEL-b", domain.StatusInProgress))

	all := r.List(domain.ListFilter{})
	require.Len(t, all, 3)
	require.Equal(t, []string{"DEL-a", "DEL-b", "DEL-c"}, []string{all[0].ID, all[1].ID, all[2].ID})

	inProgress := r.List(domain.ListFilter{Status: domain.StatusInProgress})
	require.Len(t, inProgress, 1)
	require.Equal(t, "DEL-b", inProgress[0].ID)

	batched := r.List(domain.ListFilter{BatchID: "B-1"})
	require.Len(t, batched, 1)
	require.Equal(t, "DEL-a", batched[0].ID)
}

func TestRegistry_ListReturnsCopies(t *testing.T) {
	t.Parallel()

	r := newRegistry()
	r.Add(pendingDelivery("DEL-1"))

	got := r.List(domain.ListFilter{})
	got[0].Status = domain.StatusFailed

	fresh, err := r.Get("DEL-1")
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, fresh.Status)
}

func TestRegistry_LogsAddAndTransition(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	r := registry.New(rec.Logger())
	r.Add(pendingDelivery("DEL-1"))
	require.NoError(t, r.Transition("DEL-1", domain.StatusPickedUp))

	require.Equal(t, 2, rec.CountLevel("info"))
}
