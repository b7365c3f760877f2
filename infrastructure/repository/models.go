package repository

import (
	"time"

	"github.com/vfg2006/foodbrand-dashboard-api/internal/domain"
)

// CustomerModel é o schema gorm da tabela de clientes
type CustomerModel struct {
	Position   int        `gorm:"primaryKey;autoIncrement:false"`
	ID         string     `gorm:"type:varchar(32);uniqueIndex;not null"`
	Name       string     `gorm:"type:varchar(255);not null"`
	Phone      string     `gorm:"type:varchar(11);uniqueIndex;not null"`
	Address    string     `gorm:"type:varchar(255)"`
	OrderCount int        `gorm:"not null;default:0"`
	TotalSpent float64    `gorm:"not null;default:0"`
	LastOrder  *time.Time `gorm:"type:date"`
}

func (CustomerModel) TableName() string {
	return customersTable
}

func (m *CustomerModel) ToDomain() domain.Customer {
	customer := domain.Customer{
		ID:         m.ID,
		Name:       m.Name,
		Phone:      m.Phone,
		Address:    m.Address,
		OrderCount: m.OrderCount,
		TotalSpent: m.TotalSpent,
	}
	if m.LastOrder != nil {
		customer.LastOrder = m.LastOrder.Format(time.DateOnly)
	}
	return customer
}

func CustomerModelFromDomain(position int, customer domain.Customer) CustomerModel {
	model := CustomerModel{
		Position:   position,
		ID:         customer.ID,
		Name:       customer.Name,
		Phone:      customer.Phone,
		Address:    customer.Address,
		OrderCount: customer.OrderCount,
		TotalSpent: customer.TotalSpent,
	}
	if lastOrder, err := time.Parse(time.DateOnly, customer.LastOrder); err == nil {
		model.LastOrder = &lastOrder
	}
	return model
}

// SalesRecordModel é o schema gorm da tabela de vendas
type SalesRecordModel struct {
	Position      int       `gorm:"primaryKey;autoIncrement:false"`
	Date          time.Time `gorm:"type:date;not null;index"`
	Amount        float64   `gorm:"not null"`
	CustomerPhone string    `gorm:"type:varchar(11);not null;index"`
}

func (SalesRecordModel) TableName() string {
	return salesRecordsTable
}

func (m *SalesRecordModel) ToDomain() domain.SalesRecord {
	return domain.SalesRecord{
		Date:          m.Date.Format(time.DateOnly),
		Amount:        m.Amount,
		CustomerPhone: m.CustomerPhone,
	}
}

func SalesRecordModelFromDomain(position int, record domain.SalesRecord) SalesRecordModel {
	date, _ := time.Parse(time.DateOnly, record.Date)
	return SalesRecordModel{
		Position:      position,
		Date:          date,
		Amount:        record.Amount,
		CustomerPhone: record.CustomerPhone,
	}
}

// UserModel é o schema gorm da tabela de usuários
type UserModel struct {
	ID           int       `gorm:"primaryKey;autoIncrement"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Company      string    `gorm:"type:varchar(255)"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Active       bool      `gorm:"not null;default:true"`
	RoleID       int       `gorm:"not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (UserModel) TableName() string {
	return usersTable
}

func (m *UserModel) ToDomain() *domain.User {
	return &domain.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		Company:      m.Company,
		PasswordHash: m.PasswordHash,
		Active:       m.Active,
		RoleID:       m.RoleID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func UserModelFromDomain(user *domain.User) *UserModel {
	return &UserModel{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Company:      user.Company,
		PasswordHash: user.PasswordHash,
		Active:       user.Active,
		RoleID:       user.RoleID,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

// AllModels lista os schemas migrados na subida com o driver MySQL
func AllModels() []interface{} {
	return []interface{}{&CustomerModel{}, &SalesRecordModel{}, &UserModel{}}
}
