package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/graficaerp/backend/internal/domain/catalog"
)

// ProductModel is the persistence model for the Product aggregate
type ProductModel struct {
	TenantAggregateModel
	Code          string          `gorm:"type:varchar(50);not null;index:idx_products_tenant_code,unique,composite:tenant_id"`
	Name          string          `gorm:"type:varchar(200);not null"`
	Description   string          `gorm:"type:text"`
	CategoryID    *uuid.UUID      `gorm:"type:uuid;index"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Unit          string          `gorm:"type:varchar(20);not null"`
	StockQuantity decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	MinimumStock  decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	Active        bool            `gorm:"not null;default:true"`
	PublicVisible bool            `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	product := &catalog.Product{
		Code:          m.Code,
		Name:          m.Name,
		Description:   m.Description,
		CategoryID:    m.CategoryID,
		UnitPrice:     m.UnitPrice,
		Unit:          m.Unit,
		StockQuantity: m.StockQuantity,
		MinimumStock:  m.MinimumStock,
		Active:        m.Active,
		PublicVisible: m.PublicVisible,
	}
	m.PopulateTenantAggregateRoot(&product.TenantAggregateRoot)
	return product
}

// FromDomain populates the persistence model from a domain Product
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.Code = p.Code
	m.Name = p.Name
	m.Description = p.Description
	m.CategoryID = p.CategoryID
	m.UnitPrice = p.UnitPrice
	m.Unit = p.Unit
	m.StockQuantity = p.StockQuantity
	m.MinimumStock = p.MinimumStock
	m.Active = p.Active
	m.PublicVisible = p.PublicVisible
}

// ProductModelFromDomain creates a persistence model from a domain Product
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// CategoryModel is the persistence model for the Category aggregate
type CategoryModel struct {
	TenantAggregateModel
	Name   string `gorm:"type:varchar(100);not null"`
	Active bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category
func (m *CategoryModel) ToDomain() *catalog.Category {
	category := &catalog.Category{
		Name:   m.Name,
		Active: m.Active,
	}
	m.PopulateTenantAggregateRoot(&category.TenantAggregateRoot)
	return category
}

// FromDomain populates the persistence model from a domain Category
func (m *CategoryModel) FromDomain(c *catalog.Category) {
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	m.Name = c.Name
	m.Active = c.Active
}

// CategoryModelFromDomain creates a persistence model from a domain Category
func CategoryModelFromDomain(c *catalog.Category) *CategoryModel {
	m := &CategoryModel{}
	m.FromDomain(c)
	return m
}
