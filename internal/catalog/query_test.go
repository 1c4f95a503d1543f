package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printshop/internal/domain"
)

func fixture() []domain.Product {
	return []domain.Product{
		{ID: "ban-001", Name: "Vinyl Banner", Description: "Outdoor banner printing", Category: "Banners", Price: 599, Rating: 4.2},
		{ID: "biz-001", Name: "Business Cards", Description: "Matte finish cards", Category: "Business", Price: 199, Rating: 4.8},
		{ID: "inv-001", Name: "Wedding Invitation Cards", Description: "Premium invitation cards", Category: "Invitations", Price: 299, Rating: 4.5},
		{ID: "pos-001", Name: "Poster", Description: "A2 poster", Category: "Posters", Price: 149, Rating: 3.9},
		{ID: "biz-002", Name: "Letterhead", Description: "Company letterhead", Category: "Business", Price: 249, Rating: 4.8},
	}
}

func ids(ps []domain.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestApplyZeroQueryReturnsAllSortedByName(t *testing.T) {
	got := Apply(fixture(), Query{})
	assert.Equal(t, []string{"biz-001", "biz-002", "pos-001", "ban-001", "inv-001"}, ids(got))
}

func TestApplyTermMatchesNameAndDescription(t *testing.T) {
	// "cards" appears in two names and one extra description
	got := Apply(fixture(), Query{Term: "  CARDS "})
	require.Len(t, got, 2)
	assert.Equal(t, []string{"biz-001", "inv-001"}, ids(got))

	got = Apply(fixture(), Query{Term: "letterhead"})
	require.Len(t, got, 1)
	assert.Equal(t, "biz-002", got[0].ID)
}

func TestApplyCategoryFilter(t *testing.T) {
	got := Apply(fixture(), Query{Category: "Business"})
	assert.Equal(t, []string{"biz-001", "biz-002"}, ids(got))

	// "All" and empty behave identically
	assert.Len(t, Apply(fixture(), Query{Category: domain.CategoryAll}), 5)
	assert.Len(t, Apply(fixture(), Query{Category: ""}), 5)

	assert.Empty(t, Apply(fixture(), Query{Category: "Nonexistent"}))
}

func TestApplyPriceBounds(t *testing.T) {
	got := Apply(fixture(), Query{MinPrice: 200, MaxPrice: 300})
	assert.Equal(t, []string{"biz-002", "inv-001"}, ids(got))

	// MaxPrice == 0 means no upper bound
	got = Apply(fixture(), Query{MinPrice: 500})
	assert.Equal(t, []string{"ban-001"}, ids(got))

	// inverted bounds yield empty, not an error
	assert.Empty(t, Apply(fixture(), Query{MinPrice: 400, MaxPrice: 100}))
}

func TestApplyConjunctiveFilters(t *testing.T) {
	got := Apply(fixture(), Query{Term: "cards", Category: "Business", MaxPrice: 250})
	require.Len(t, got, 1)
	assert.Equal(t, "biz-001", got[0].ID)
}

func TestApplySortOrders(t *testing.T) {
	asc := Apply(fixture(), Query{Sort: SortPriceAsc})
	assert.Equal(t, []string{"pos-001", "biz-001", "biz-002", "inv-001", "ban-001"}, ids(asc))

	desc := Apply(fixture(), Query{Sort: SortPriceDesc})
	assert.Equal(t, []string{"ban-001", "inv-001", "biz-002", "biz-001", "pos-001"}, ids(desc))

	rating := Apply(fixture(), Query{Sort: SortRating})
	assert.Equal(t, "pos-001", rating[len(rating)-1].ID)
}

func TestApplySortIsStable(t *testing.T) {
	// biz-001 and biz-002 share a rating; input order must survive the sort
	got := Apply(fixture(), Query{Sort: SortRating})
	require.Len(t, got, 5)
	assert.Equal(t, "biz-001", got[0].ID)
	assert.Equal(t, "biz-002", got[1].ID)
}

func TestApplyPagination(t *testing.T) {
	got := Apply(fixture(), Query{Page: 1, PageSize: 2})
	assert.Equal(t, []string{"biz-001", "biz-002"}, ids(got))

	got = Apply(fixture(), Query{Page: 3, PageSize: 2})
	assert.Equal(t, []string{"inv-001"}, ids(got))

	// out-of-range page is empty
	assert.Empty(t, Apply(fixture(), Query{Page: 4, PageSize: 2}))

	// Page == 0 disables pagination
	assert.Len(t, Apply(fixture(), Query{Page: 0, PageSize: 2}), 5)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	in := fixture()
	want := ids(in)
	_ = Apply(in, Query{Sort: SortPriceDesc})
	assert.Equal(t, want, ids(in))
}

func TestParseSortKeyFallsBackToName(t *testing.T) {
	assert.Equal(t, SortPriceAsc, ParseSortKey("priceAsc"))
	assert.Equal(t, SortName, ParseSortKey("priceAsk"))
	assert.Equal(t, SortName, ParseSortKey(""))
}
