package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTechType is returned when an assignment carries a type tag the console cannot route.
var ErrUnknownTechType = errors.New("unknown tech type")

// Category is the root of the technology taxonomy.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Subcategory groups technologies under a Category.
type Subcategory struct {
	ID         int    `json:"id"`
	CategoryID int    `json:"category_id,omitempty"`
	Name       string `json:"name"`
}

// TechStack is a leaf technology such as "Ubuntu" or "Windows Server 2019".
type TechStack struct {
	ID            int    `json:"id"`
	SubcategoryID int    `json:"subcategory_id,omitempty"`
	Name          string `json:"name"`
}

// Assignment type tags as sent by the back office.
const (
	TechTypeTechStack   = "tech_stack"
	TechTypeSubcategory = "subcategory"
	TechTypeCategory    = "category"
)

// AnyVersion matches every version of a tech stack.
const AnyVersion = "*"

// Contact is a notification address owned by an assignment.
type Contact struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
}

// ClientTechAssignment links a client to a technology, subcategory or category.
type ClientTechAssignment struct {
	ID       int       `json:"id"`
	ClientID int       `json:"client_id,omitempty"`
	Type     string    `json:"type"`
	Name     string    `json:"name"`
	Version  string    `json:"version,omitempty"`
	Contacts []Contact `json:"contacts,omitempty"`
}

// ClientTechScope is the assignment's scope reference. Exactly one of
// TechStackScope, SubcategoryScope or CategoryScope.
type ClientTechScope interface {
	AssignmentID() int
	isClientTechScope()
}

type TechStackScope struct{ ID int }

type SubcategoryScope struct{ ID int }

type CategoryScope struct{ ID int }

func (s TechStackScope) AssignmentID() int   { return s.ID }
func (s SubcategoryScope) AssignmentID() int { return s.ID }
func (s CategoryScope) AssignmentID() int    { return s.ID }

func (TechStackScope) isClientTechScope()   {}
func (SubcategoryScope) isClientTechScope() {}
func (CategoryScope) isClientTechScope()    {}

// Scope resolves the assignment's type tag. Tags compare case-insensitively.
func (a ClientTechAssignment) Scope() (ClientTechScope, error) {
	switch strings.ToLower(a.Type) {
	case TechTypeTechStack:
		return TechStackScope{ID: a.ID}, nil
	case TechTypeSubcategory:
		return SubcategoryScope{ID: a.ID}, nil
	case TechTypeCategory:
		return CategoryScope{ID: a.ID}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTechType, a.Type)
	}
}

// TechAssignmentRequest is the body of POST /api/clients/{id}/tech.
type TechAssignmentRequest struct {
	TechStackID   *int    `json:"tech_stack_id"`
	SubcategoryID *int    `json:"subcategory_id"`
	CategoryName  *string `json:"category_name"`
	Version       string  `json:"version"`
}

// FindTechStack returns the tech stack with the given id.
func FindTechStack(stacks []TechStack, id int) (TechStack, bool) {
	for _, t := range stacks {
		if t.ID == id {
			return t, true
		}
	}
	return TechStack{}, false
}

// FindCategory returns the category with the given id.
func FindCategory(categories []Category, id int) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}
