package logic

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/Hariprajaa05/Farmer-project/internal/model"
	"github.com/Hariprajaa05/Farmer-project/internal/repository"
	"gorm.io/gorm"
)

func offerIDs(offers []Offer) []int64 {
	ids := make([]int64, len(offers))
	for i, offer := range offers {
		ids[i] = offer.OfferId
	}
	return ids
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestListOffers_JoinsInLinkOrder(t *testing.T) {
	store := newTestStore(t)
	catalog := NewCatalogLogic(store)

	ravi := mustCreateFarmer(t, store, "Ravi")
	meena := mustCreateFarmer(t, store, "Meena")
	tomato := mustCreateProduct(t, store, "Tomato", "Vegetables")
	banana := mustCreateProduct(t, store, "Banana", "Fruits")

	l1 := mustCreateLink(t, store, meena.Id, banana.Id, 4800)
	l2 := mustCreateLink(t, store, ravi.Id, tomato.Id, 3250)
	l3 := mustCreateLink(t, store, ravi.Id, banana.Id, 5000)

	offers, err := catalog.ListOffers(context.Background(), OfferFilter{})
	if err != nil {
		t.Fatalf("list offers: %v", err)
	}
	if want := []int64{l1.Id, l2.Id, l3.Id}; !equalIDs(offerIDs(offers), want) {
		t.Fatalf("expected offers %v, got %v", want, offerIDs(offers))
	}

	first := offers[1]
	if first.Price != 3250 || first.Product.Name != "Tomato" || first.Farmer.Name != "Ravi" || first.Farmer.District != "Coimbatore" {
		t.Fatalf("unexpected joined offer %+v", first)
	}

	byFarmer, err := catalog.ListOffers(context.Background(), OfferFilter{FarmerId: ravi.Id})
	if err != nil {
		t.Fatalf("list offers by farmer: %v", err)
	}
	if want := []int64{l2.Id, l3.Id}; !equalIDs(offerIDs(byFarmer), want) {
		t.Fatalf("expected offers %v, got %v", want, offerIDs(byFarmer))
	}

	none, err := catalog.ListOffers(context.Background(), OfferFilter{FarmerId: 9999})
	if err != nil {
		t.Fatalf("unknown farmer should not fail: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no offers, got %d", len(none))
	}
}

func TestListOffers_DropsOrphans(t *testing.T) {
	store := newTestStore(t)
	catalog := NewCatalogLogic(store)

	farmer := mustCreateFarmer(t, store, "Ravi")
	tomato := mustCreateProduct(t, store, "Tomato", "Vegetables")
	onion := mustCreateProduct(t, store, "Onion", "Vegetables")

	mustCreateLink(t, store, farmer.Id, tomato.Id, 100)
	keep := mustCreateLink(t, store, farmer.Id, onion.Id, 200)
	mustCreateLink(t, store, farmer.Id, tomato.Id, 300)
	mustCreateLink(t, store, 777, onion.Id, 400)

	if _, err := store.DeleteProduct(context.Background(), tomato.Id); err != nil {
		t.Fatalf("delete product: %v", err)
	}

	offers, err := catalog.ListOffers(context.Background(), OfferFilter{})
	if err != nil {
		t.Fatalf("list offers: %v", err)
	}
	if want := []int64{keep.Id}; !equalIDs(offerIDs(offers), want) {
		t.Fatalf("expected only %v, got %v", want, offerIDs(offers))
	}
}

func TestListOffers_CategoryAndPagination(t *testing.T) {
	store := newTestStore(t)
	catalog := NewCatalogLogic(store)

	farmer := mustCreateFarmer(t, store, "Ravi")
	veg := mustCreateProduct(t, store, "Tomato", "Vegetables")
	fruit := mustCreateProduct(t, store, "Mango", " fruits ")

	a := mustCreateLink(t, store, farmer.Id, veg.Id, 1)
	b := mustCreateLink(t, store, farmer.Id, fruit.Id, 2)
	c := mustCreateLink(t, store, farmer.Id, veg.Id, 3)
	d := mustCreateLink(t, store, farmer.Id, fruit.Id, 4)

	tests := []struct {
		name   string
		filter OfferFilter
		want   []int64
	}{
		{"all keyword", OfferFilter{Category: "All"}, []int64{a.Id, b.Id, c.Id, d.Id}},
		{"case insensitive", OfferFilter{Category: "VEGETABLES"}, []int64{a.Id, c.Id}},
		{"trimmed", OfferFilter{Category: "  Fruits"}, []int64{b.Id, d.Id}},
		{"unknown category", OfferFilter{Category: "Dairy"}, []int64{}},
		{"limit", OfferFilter{Limit: 2}, []int64{a.Id, b.Id}},
		{"offset", OfferFilter{Offset: 3}, []int64{d.Id}},
		{"offset and limit", OfferFilter{Offset: 1, Limit: 2}, []int64{b.Id, c.Id}},
		{"offset past end", OfferFilter{Offset: 10}, []int64{}},
		{"filter then paginate", OfferFilter{Category: "vegetables", Offset: 1}, []int64{c.Id}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offers, err := catalog.ListOffers(context.Background(), tt.filter)
			if err != nil {
				t.Fatalf("list offers: %v", err)
			}
			if !equalIDs(offerIDs(offers), tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, offerIDs(offers))
			}
		})
	}
}

func TestListOffers_InvalidFilter(t *testing.T) {
	catalog := NewCatalogLogic(newTestStore(t))

	for _, filter := range []OfferFilter{{Limit: -1}, {Offset: -1}, {FarmerId: -3}} {
		if _, err := catalog.ListOffers(context.Background(), filter); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("filter %+v: expected ErrInvalidInput, got %v", filter, err)
		}
	}
}

func TestListOffers_StoreFailureIsNotEmpty(t *testing.T) {
	db := newTestDB(t)
	store := repository.New(db)
	catalog := NewCatalogLogic(store)

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	_ = sqlDB.Close()

	offers, err := catalog.ListOffers(context.Background(), OfferFilter{})
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if offers != nil {
		t.Fatalf("expected no partial result, got %v", offers)
	}
}

func TestJoinOffers_MissingFarmer(t *testing.T) {
	links := []model.FarmerProductModel{
		{Id: 1, FarmerId: 1, ProductId: 1},
		{Id: 2, FarmerId: 2, ProductId: 1},
	}
	products := map[int64]model.ProductModel{1: {Id: 1, Name: "Tomato"}}
	farmers := map[int64]model.FarmerModel{1: {Id: 1, Name: "Ravi"}}

	offers := joinOffers(links, products, farmers)
	if len(offers) != 1 || offers[0].OfferId != 1 {
		t.Fatalf("expected only offer 1, got %+v", offers)
	}
}

func TestCatalogListProducts(t *testing.T) {
	store := newTestStore(t)
	catalog := NewCatalogLogic(store)

	mustCreateProduct(t, store, "Tomato", "Vegetables")
	mustCreateProduct(t, store, "Mango", "Fruits")

	all, err := catalog.ListProducts(context.Background(), "all")
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 products, got %d", len(all))
	}

	fruits, err := catalog.ListProducts(context.Background(), " fruits ")
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(fruits) != 1 || fruits[0].Name != "Mango" {
		t.Fatalf("unexpected products %+v", fruits)
	}
}

func TestListOffers_ReadsOneSnapshot(t *testing.T) {
	db := newTestDB(t)
	store := repository.New(db)
	catalog := NewCatalogLogic(store)

	farmer := mustCreateFarmer(t, store, "Ravi")
	product := mustCreateProduct(t, store, "Tomato", "Vegetables")
	mustCreateLink(t, store, farmer.Id, product.Id, 100)

	var (
		tables  []string
		outside []string
	)
	err := db.Callback().Query().Before("gorm:query").Register("test:snapshot_reads", func(tx *gorm.DB) {
		tables = append(tables, tx.Statement.Table)
		if _, ok := tx.Statement.ConnPool.(*sql.Tx); !ok {
			outside = append(outside, tx.Statement.Table)
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	offers, err := catalog.ListOffers(context.Background(), OfferFilter{})
	if err != nil {
		t.Fatalf("list offers: %v", err)
	}
	if len(offers) != 1 {
		t.Fatalf("expected 1 offer, got %d", len(offers))
	}
	if len(tables) != 3 {
		t.Fatalf("expected links, products and farmers to be read, got %v", tables)
	}
	if len(outside) != 0 {
		t.Fatalf("reads outside the snapshot transaction: %v", outside)
	}
}

func TestDeleteProduct(t *testing.T) {
	store := newTestStore(t)
	catalog := NewCatalogLogic(store)

	farmer := mustCreateFarmer(t, store, "Ravi")
	tomato := mustCreateProduct(t, store, "Tomato", "Vegetables")
	mango := mustCreateProduct(t, store, "Mango", "Fruits")
	mustCreateLink(t, store, farmer.Id, tomato.Id, 100)
	keep := mustCreateLink(t, store, farmer.Id, mango.Id, 200)

	if err := catalog.DeleteProduct(context.Background(), tomato.Id); err != nil {
		t.Fatalf("delete product: %v", err)
	}
	offers, err := catalog.ListOffers(context.Background(), OfferFilter{})
	if err != nil {
		t.Fatalf("list offers: %v", err)
	}
	if want := []int64{keep.Id}; !equalIDs(offerIDs(offers), want) {
		t.Fatalf("expected %v, got %v", want, offerIDs(offers))
	}

	if err := catalog.DeleteProduct(context.Background(), tomato.Id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	if err := catalog.DeleteProduct(context.Background(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
