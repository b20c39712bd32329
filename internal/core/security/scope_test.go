package security_test

import (
	"context"
	"testing"

	"forwarding/internal/core/domain/model/agency"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/security"
	"forwarding/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubChildren serves direct-children lookups from a map. Absent keys mean
// no children, matching a leaf agency.
type stubChildren struct {
	children map[kernel.UUID][]*agency.Agency
}

func (s stubChildren) GetChildren(_ context.Context, id kernel.UUID) ([]*agency.Agency, error) {
	return s.children[id], nil
}

// tree builds forwarder -> reseller -> {leafA, leafB} and its child map.
func tree(t *testing.T) (fw, reseller, leafA, leafB *agency.Agency, source stubChildren) {
	t.Helper()

	fw, err := agency.NewForwarder(kernel.NewUUID(), "Gulf Cargo")
	require.NoError(t, err)
	reseller, err = agency.NewChildAgency(kernel.NewUUID(), "Midwest Reseller", agency.Reseller, fw)
	require.NoError(t, err)
	leafA, err = agency.NewChildAgency(kernel.NewUUID(), "Springfield Agency", agency.AgencyLeaf, reseller)
	require.NoError(t, err)
	leafB, err = agency.NewChildAgency(kernel.NewUUID(), "Shelbyville Agency", agency.AgencyLeaf, reseller)
	require.NoError(t, err)

	source = stubChildren{children: map[kernel.UUID][]*agency.Agency{
		fw.ID():       {reseller},
		reseller.ID(): {leafA, leafB},
	}}
	return fw, reseller, leafA, leafB, source
}

func TestVisibleAgencies_AgencyCallerSeesSelfAndDescendants(t *testing.T) {
	ctx := t.Context()
	_, reseller, leafA, leafB, source := tree(t)

	resellerID := reseller.ID()
	caller, err := security.NewCaller(security.ResellerAdmin, &resellerID, nil)
	require.NoError(t, err)

	scope, err := security.VisibleAgencies(ctx, caller, source)
	require.NoError(t, err)

	assert.False(t, scope.All)
	assert.Len(t, scope.AgencyIDs, 3)
	assert.True(t, scope.Contains(reseller.ID()))
	assert.True(t, scope.Contains(leafA.ID()))
	assert.True(t, scope.Contains(leafB.ID()))
}

func TestVisibleAgencies_LeafCallerSeesOnlyItself(t *testing.T) {
	ctx := t.Context()
	_, _, leafA, leafB, source := tree(t)

	leafID := leafA.ID()
	caller, err := security.NewCaller(security.AgencyAdmin, &leafID, nil)
	require.NoError(t, err)

	scope, err := security.VisibleAgencies(ctx, caller, source)
	require.NoError(t, err)

	assert.Equal(t, []kernel.UUID{leafA.ID()}, scope.AgencyIDs)
	assert.False(t, scope.Contains(leafB.ID()))
}

func TestVisibleAgencies_ElevatedCallerSeesAll(t *testing.T) {
	ctx := t.Context()

	caller, err := security.NewCaller(security.Administrator, nil, nil)
	require.NoError(t, err)

	scope, err := security.VisibleAgencies(ctx, caller, stubChildren{})
	require.NoError(t, err)

	assert.True(t, scope.All)
	assert.True(t, scope.Contains(kernel.NewUUID()))
}

func TestVisibleAgencies_NoMembershipRejected(t *testing.T) {
	ctx := t.Context()

	caller, err := security.NewCaller(security.AgencyAdmin, nil, nil)
	require.NoError(t, err)

	_, err = security.VisibleAgencies(ctx, caller, stubChildren{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestVisibleAgencies_TerminatesOnCycle(t *testing.T) {
	ctx := t.Context()

	a, err := agency.NewForwarder(kernel.NewUUID(), "A")
	require.NoError(t, err)
	b, err := agency.NewChildAgency(kernel.NewUUID(), "B", agency.Reseller, a)
	require.NoError(t, err)

	// Corrupt data: A and B list each other as children.
	source := stubChildren{children: map[kernel.UUID][]*agency.Agency{
		a.ID(): {b},
		b.ID(): {a},
	}}

	aID := a.ID()
	caller, err := security.NewCaller(security.ResellerAdmin, &aID, nil)
	require.NoError(t, err)

	scope, err := security.VisibleAgencies(ctx, caller, source)
	require.NoError(t, err)
	assert.Len(t, scope.AgencyIDs, 2)
}

func TestDescendants_ExcludesTheAgencyItself(t *testing.T) {
	ctx := t.Context()
	fw, reseller, leafA, leafB, source := tree(t)

	descendants, err := security.Descendants(ctx, fw.ID(), source)
	require.NoError(t, err)

	assert.Len(t, descendants, 3)
	for _, id := range []kernel.UUID{reseller.ID(), leafA.ID(), leafB.ID()} {
		assert.Contains(t, descendants, id)
	}
	assert.NotContains(t, descendants, fw.ID())
}
