package model

import (
	"time"
)

type UserRole string

const (
	TestSetterRole  UserRole = "test_setter"
	TestTakerRole   UserRole = "test_taker"
	InvigilatorRole UserRole = "invigilator"
)

// swagger:model User
type User struct {
	BaseModel
	Username     string `gorm:"size:150;not null;uniqueIndex:users_username_key" json:"username"`
	FullName     string `gorm:"size:255;not null" json:"fullName"`
	Email        string `gorm:"size:255;not null;uniqueIndex:users_email_key" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// Role records extend a user one-to-one; their primary key is the user id.

type TestSetter struct {
	ID        uint `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time
}

func (TestSetter) TableName() string {
	return "test_setters"
}

type TestTaker struct {
	ID        uint `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time
}

func (TestTaker) TableName() string {
	return "test_takers"
}

type Invigilator struct {
	ID        uint `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time
}

func (Invigilator) TableName() string {
	return "invigilators"
}

// RoleTable returns the table backing a role record.
func RoleTable(role UserRole) string {
	switch role {
	case TestSetterRole:
		return TestSetter{}.TableName()
	case TestTakerRole:
		return TestTaker{}.TableName()
	case InvigilatorRole:
		return Invigilator{}.TableName()
	}
	return ""
}

// Roles reports which role records a user currently owns.
type Roles struct {
	TestSetter  bool `json:"isTestSetter"`
	TestTaker   bool `json:"isTestTaker"`
	Invigilator bool `json:"isInvigilator"`
}

func (r Roles) Has(role UserRole) bool {
	switch role {
	case TestSetterRole:
		return r.TestSetter
	case TestTakerRole:
		return r.TestTaker
	case InvigilatorRole:
		return r.Invigilator
	}
	return false
}
