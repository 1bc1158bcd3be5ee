// ABOUTME: Tests for contact database operations
// ABOUTME: Covers ULID assignment, search across fields and tags, and cascading delete
package db

import (
	"errors"
	"testing"

	"github.com/oklog/ulid/v2"

	"github.com/harperreed/connecthub/models"
)

func TestCreateAndGetContact(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	contact := &models.Contact{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Company: "Analytical Engines",
		Role:    "Programmer",
		Tags:    []string{"math", "vip"},
	}
	if err := CreateContact(db, contact); err != nil {
		t.Fatalf("CreateContact failed: %v", err)
	}

	if _, err := ulid.Parse(contact.ID); err != nil {
		t.Errorf("Expected ULID id, got %q: %v", contact.ID, err)
	}

	got, err := GetContact(db, contact.ID)
	if err != nil {
		t.Fatalf("GetContact failed: %v", err)
	}
	if got == nil {
		t.Fatal("Expected contact, got nil")
	}
	if got.Name != "Ada Lovelace" || got.Company != "Analytical Engines" || got.Role != "Programmer" {
		t.Errorf("Unexpected contact: %+v", got)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "math" || got.Tags[1] != "vip" {
		t.Errorf("Expected tags [math vip], got %v", got.Tags)
	}
}

func TestCreateContactNilTags(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	contact := &models.Contact{Name: "Bob", Email: "bob@example.com"}
	if err := CreateContact(db, contact); err != nil {
		t.Fatalf("CreateContact failed: %v", err)
	}

	got, err := GetContact(db, contact.ID)
	if err != nil {
		t.Fatalf("GetContact failed: %v", err)
	}
	if got.Tags == nil || len(got.Tags) != 0 {
		t.Errorf("Expected empty non-nil tags, got %#v", got.Tags)
	}
}

func TestGetContactMissing(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	got, err := GetContact(db, "01HZZZZZZZZZZZZZZZZZZZZZZZ")
	if err != nil {
		t.Fatalf("GetContact failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for missing contact, got %+v", got)
	}
}

func TestFindContacts(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	for _, c := range []*models.Contact{
		{Name: "Ada Lovelace", Email: "ada@example.com", Company: "Analytical Engines", Tags: []string{"math"}},
		{Name: "Grace Hopper", Email: "grace@navy.mil", Role: "Rear Admiral", Tags: []string{"compilers", "navy"}},
		{Name: "Linus", Email: "linus@example.com", Company: "Kernel_Org", Tags: []string{}},
	} {
		if err := CreateContact(db, c); err != nil {
			t.Fatalf("CreateContact failed: %v", err)
		}
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"blank returns all in creation order", "  ", []string{"Ada Lovelace", "Grace Hopper", "Linus"}},
		{"name match ignores case", "ADA", []string{"Ada Lovelace"}},
		{"company match", "analytical", []string{"Ada Lovelace"}},
		{"role match", "admiral", []string{"Grace Hopper"}},
		{"tag match", "compil", []string{"Grace Hopper"}},
		{"underscore is literal", "_org", []string{"Linus"}},
		{"percent is literal", "%", []string{}},
		{"no match", "zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contacts, err := FindContacts(db, tt.query)
			if err != nil {
				t.Fatalf("FindContacts failed: %v", err)
			}
			if contacts == nil {
				t.Fatal("Expected non-nil slice")
			}
			if len(contacts) != len(tt.want) {
				t.Fatalf("Expected %d contacts, got %d: %+v", len(tt.want), len(contacts), contacts)
			}
			for i, name := range tt.want {
				if contacts[i].Name != name {
					t.Errorf("Position %d: expected %s, got %s", i, name, contacts[i].Name)
				}
			}
		})
	}
}

func TestDeleteContactCascades(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	keep := &models.Contact{Name: "Keep", Email: "keep@example.com"}
	drop := &models.Contact{Name: "Drop", Email: "drop@example.com"}
	for _, c := range []*models.Contact{keep, drop} {
		if err := CreateContact(db, c); err != nil {
			t.Fatalf("CreateContact failed: %v", err)
		}
	}

	date, _ := models.ParseDate("2024-05-01")
	for _, id := range []string{keep.ID, drop.ID, drop.ID} {
		if err := CreateInteraction(db, &models.Interaction{ContactID: id, Type: models.InteractionCall, Date: date, Notes: "n"}); err != nil {
			t.Fatalf("CreateInteraction failed: %v", err)
		}
	}

	if err := DeleteContact(db, drop.ID); err != nil {
		t.Fatalf("DeleteContact failed: %v", err)
	}

	all, err := ListInteractions(db)
	if err != nil {
		t.Fatalf("ListInteractions failed: %v", err)
	}
	if len(all) != 1 || all[0].ContactID != keep.ID {
		t.Errorf("Expected only the kept contact's interaction, got %+v", all)
	}

	if got, _ := GetContact(db, drop.ID); got != nil {
		t.Error("Expected contact to be deleted")
	}
}

func TestDeleteContactMissing(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := DeleteContact(db, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
