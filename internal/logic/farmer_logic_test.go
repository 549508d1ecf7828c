package logic

import (
	"context"
	"errors"
	"testing"
)

func strPtr(s string) *string { return &s }
func int64Ptr(v int64) *int64 { return &v }

func TestUpdateFarmer(t *testing.T) {
	store := newTestStore(t)
	farmers := NewFarmerLogic(store)
	farmer := mustCreateFarmer(t, store, "Ravi")

	updated, err := farmers.UpdateFarmer(context.Background(), farmer.Id, FarmerUpdate{
		Name:     strPtr(" Ravi Kumar "),
		District: strPtr("Tiruppur"),
	})
	if err != nil {
		t.Fatalf("update farmer: %v", err)
	}
	if updated.Name != "Ravi Kumar" || updated.District != "Tiruppur" || updated.Location != "Pollachi" {
		t.Fatalf("unexpected farmer %+v", updated)
	}

	if _, err := farmers.UpdateFarmer(context.Background(), farmer.Id, FarmerUpdate{Name: strPtr(" ")}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
	if _, err := farmers.UpdateFarmer(context.Background(), farmer.Id, FarmerUpdate{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty update, got %v", err)
	}
	if _, err := farmers.UpdateFarmer(context.Background(), 404, FarmerUpdate{Name: strPtr("x")}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetFarmer(t *testing.T) {
	store := newTestStore(t)
	farmers := NewFarmerLogic(store)
	farmer := mustCreateFarmer(t, store, "Ravi")

	got, err := farmers.GetFarmer(context.Background(), farmer.Id)
	if err != nil {
		t.Fatalf("get farmer: %v", err)
	}
	if got.Name != "Ravi" {
		t.Fatalf("unexpected farmer %+v", got)
	}
	if _, err := farmers.GetFarmer(context.Background(), 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateLink_ChangesCatalogView(t *testing.T) {
	store := newTestStore(t)
	farmers := NewFarmerLogic(store)
	catalog := NewCatalogLogic(store)

	farmer := mustCreateFarmer(t, store, "Ravi")
	tomato := mustCreateProduct(t, store, "Tomato", "Vegetables")
	mango := mustCreateProduct(t, store, "Mango", "Fruits")
	link := mustCreateLink(t, store, farmer.Id, tomato.Id, 100)

	updated, err := farmers.UpdateLink(context.Background(), link.Id, LinkUpdate{
		ProductId: int64Ptr(mango.Id),
		Price:     int64Ptr(9900),
	})
	if err != nil {
		t.Fatalf("update link: %v", err)
	}
	if updated.ProductId != mango.Id || updated.Price != 9900 {
		t.Fatalf("unexpected link %+v", updated)
	}

	offers, err := catalog.ListOffers(context.Background(), OfferFilter{Category: "fruits"})
	if err != nil {
		t.Fatalf("list offers: %v", err)
	}
	if len(offers) != 1 || offers[0].Product.Name != "Mango" || offers[0].Price != 9900 {
		t.Fatalf("catalog should reflect the edit, got %+v", offers)
	}

	tests := []struct {
		name    string
		id      int64
		update  LinkUpdate
		wantErr error
	}{
		{"negative price", link.Id, LinkUpdate{Price: int64Ptr(-1)}, ErrInvalidInput},
		{"unknown product", link.Id, LinkUpdate{ProductId: int64Ptr(404)}, ErrInvalidInput},
		{"no fields", link.Id, LinkUpdate{}, ErrInvalidInput},
		{"unknown link", 404, LinkUpdate{Image: strPtr("x.jpg")}, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := farmers.UpdateLink(context.Background(), tt.id, tt.update); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCreateLink(t *testing.T) {
	store := newTestStore(t)
	farmers := NewFarmerLogic(store)
	catalog := NewCatalogLogic(store)

	farmer := mustCreateFarmer(t, store, "Ravi")
	okra := mustCreateProduct(t, store, "Okra", "Vegetables")

	link, err := farmers.CreateLink(context.Background(), LinkInput{
		FarmerId:  farmer.Id,
		ProductId: okra.Id,
		Price:     4500,
		Image:     " okra.jpg ",
	})
	if err != nil {
		t.Fatalf("create link: %v", err)
	}
	if link.Id == 0 || link.Image != "okra.jpg" {
		t.Fatalf("unexpected link %+v", link)
	}

	offers, err := catalog.ListOffers(context.Background(), OfferFilter{FarmerId: farmer.Id})
	if err != nil {
		t.Fatalf("list offers: %v", err)
	}
	if len(offers) != 1 || offers[0].OfferId != link.Id || offers[0].Product.Name != "Okra" {
		t.Fatalf("new link should appear in the catalog, got %+v", offers)
	}

	tests := []struct {
		name    string
		input   LinkInput
		wantErr error
	}{
		{"unknown farmer", LinkInput{FarmerId: 404, ProductId: okra.Id}, ErrNotFound},
		{"unknown product", LinkInput{FarmerId: farmer.Id, ProductId: 404}, ErrInvalidInput},
		{"negative price", LinkInput{FarmerId: farmer.Id, ProductId: okra.Id, Price: -1}, ErrInvalidInput},
		{"missing farmer", LinkInput{ProductId: okra.Id}, ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := farmers.CreateLink(context.Background(), tt.input); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	links, err := store.ListLinks(context.Background(), 0)
	if err != nil {
		t.Fatalf("list links: %v", err)
	}
	if len(links) != 1 {
		t.Fatalf("rejected links must not be stored, got %d", len(links))
	}
}
