package logic

import (
	"context"
	"os"
	"testing"

	"github.com/Hariprajaa05/Farmer-project/internal/config"
	"github.com/Hariprajaa05/Farmer-project/internal/database"
	"github.com/Hariprajaa05/Farmer-project/internal/logger"
	"github.com/Hariprajaa05/Farmer-project/internal/model"
	"github.com/Hariprajaa05/Farmer-project/internal/repository"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	logger.SetDefaultLogger(logger.NewNop())
	os.Exit(m.Run())
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Init(config.DatabaseConfig{Driver: database.DriverSQLite, Path: ":memory:"})
	if err != nil {
		t.Fatalf("init database: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })
	return db
}

func newTestStore(t *testing.T) *repository.Store {
	t.Helper()
	return repository.New(newTestDB(t))
}

func mustCreateFarmer(t *testing.T, store *repository.Store, name string) *model.FarmerModel {
	t.Helper()
	farmer := &model.FarmerModel{Name: name, Location: "Pollachi", District: "Coimbatore"}
	if err := store.CreateFarmer(context.Background(), farmer); err != nil {
		t.Fatalf("create farmer: %v", err)
	}
	return farmer
}

func mustCreateProduct(t *testing.T, store *repository.Store, name, category string) *model.ProductModel {
	t.Helper()
	product := &model.ProductModel{Name: name, Category: category}
	if err := store.CreateProduct(context.Background(), product); err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func mustCreateLink(t *testing.T, store *repository.Store, farmerId, productId, price int64) *model.FarmerProductModel {
	t.Helper()
	link := &model.FarmerProductModel{FarmerId: farmerId, ProductId: productId, Price: price}
	if err := store.CreateLink(context.Background(), link); err != nil {
		t.Fatalf("create link: %v", err)
	}
	return link
}
