package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/artemdev/contacts-book-rest-api/internal/model"
	"gorm.io/gorm"
)

// birthdayWindow is the number of days ahead (today included) the
// upcoming-birthdays query looks at
const birthdayWindow = 7

type ContactRepo struct {
	db *gorm.DB
}

func NewContactRepo(db *gorm.DB) *ContactRepo {
	return &ContactRepo{db: db}
}

// ContactFilter holds optional substring predicates for List. Empty
// fields are skipped, non-empty ones are ANDed together
type ContactFilter struct {
	Name    string
	Surname string
	Email   string
}

// List returns the owner's contacts in insertion order so pagination
// stays deterministic. Filters match the literal substring, exact case
func (r *ContactRepo) List(ownerID string, offset, limit int, f ContactFilter) ([]model.Contact, error) {
	q := r.db.Where("user_id = ?", ownerID)

	if f.Name != "" {
		q = q.Where(r.containsExpr("first_name"), f.Name)
	}
	if f.Surname != "" {
		q = q.Where(r.containsExpr("last_name"), f.Surname)
	}
	if f.Email != "" {
		q = q.Where(r.containsExpr("email"), f.Email)
	}

	var contacts []model.Contact

	err := q.Order("id").
		Offset(offset).
		Limit(limit).
		Find(&contacts).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts, %w", err)
	}

	return contacts, nil
}

// containsExpr builds a case-sensitive substring predicate for column.
// LIKE won't do here: it ignores ASCII case on sqlite and treats % and
// _ in the filter value as wildcards
func (r *ContactRepo) containsExpr(column string) string {
	if r.db.Dialector.Name() == "postgres" {
		return "strpos(" + column + ", ?) > 0"
	}

	return "instr(" + column + ", ?) > 0"
}

// ListAll returns contacts across all users. Only reachable through the
// admin-gated route
func (r *ContactRepo) ListAll(offset, limit int) ([]model.Contact, error) {
	var contacts []model.Contact

	err := r.db.Order("id").
		Offset(offset).
		Limit(limit).
		Find(&contacts).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to list all contacts, %w", err)
	}

	return contacts, nil
}

func (r *ContactRepo) Get(id uint, ownerID string) (*model.Contact, error) {
	var contact model.Contact

	err := r.db.Where("id = ? AND user_id = ?", id, ownerID).
		First(&contact).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to get contact, %w", err)
	}

	return &contact, nil
}

// Create stamps the authenticated caller as owner. The owner always
// comes from the resolved access token, never from the request body
func (r *ContactRepo) Create(ownerID string, contact *model.Contact) error {
	contact.ID = 0
	contact.UserID = ownerID

	if err := r.db.Create(contact).Error; err != nil {
		return fmt.Errorf("failed to create contact, %w", err)
	}

	return nil
}

// Update replaces all mutable fields in one owner-scoped UPDATE so
// concurrent writers can't interleave a partial state
func (r *ContactRepo) Update(id uint, ownerID string, data *model.Contact) (*model.Contact, error) {
	res := r.db.Model(model.Contact{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Updates(map[string]any{
			"first_name":      data.FirstName,
			"last_name":       data.LastName,
			"email":           data.Email,
			"phone":           data.Phone,
			"birthday":        data.Birthday,
			"additional_note": data.AdditionalNote,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update contact, %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return r.Get(id, ownerID)
}

// Delete removes the contact and returns the deleted record so the
// caller can confirm what was removed
func (r *ContactRepo) Delete(id uint, ownerID string) (*model.Contact, error) {
	var contact model.Contact

	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND user_id = ?", id, ownerID).
			First(&contact).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}

			return err
		}

		return tx.Where("id = ? AND user_id = ?", id, ownerID).
			Delete(model.Contact{}).
			Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to delete contact, %w", err)
	}

	return &contact, nil
}

// UpcomingBirthdays returns the owner's contacts whose birthday falls
// within the next seven days starting at today. The comparison uses
// real dates, so a window crossing Dec 31 wraps into the next year
func (r *ContactRepo) UpcomingBirthdays(ownerID string, today time.Time) ([]model.Contact, error) {
	var contacts []model.Contact

	err := r.db.Where("user_id = ? AND birthday IS NOT NULL", ownerID).
		Order("id").
		Find(&contacts).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts for birthdays, %w", err)
	}

	today = truncateToDate(today)
	end := today.AddDate(0, 0, birthdayWindow)

	upcoming := contacts[:0]
	for _, c := range contacts {
		if c.Birthday.IsZero() {
			continue
		}

		next := nextBirthday(c.Birthday.Time, today)
		if !next.Before(today) && next.Before(end) {
			upcoming = append(upcoming, c)
		}
	}

	return upcoming, nil
}

// nextBirthday projects a birthday onto its next occurrence on or after
// today. Feb 29 birthdays are observed on Feb 28 in non-leap years
func nextBirthday(birthday, today time.Time) time.Time {
	next := projectToYear(birthday, today.Year())
	if next.Before(today) {
		next = projectToYear(birthday, today.Year()+1)
	}

	return next
}

func projectToYear(birthday time.Time, year int) time.Time {
	month, day := birthday.Month(), birthday.Day()
	if month == time.February && day == 29 && !isLeapYear(year) {
		day = 28
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
