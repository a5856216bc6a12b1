package repository

import (
	"testing"
	"time"

	"github.com/artemdev/contacts-book-rest-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addContactWithBirthday(t *testing.T, r *ContactRepo, ownerID, firstName string, birthday model.Date) *model.Contact {
	t.Helper()

	contact := &model.Contact{
		FirstName: firstName,
		LastName:  "Doe",
		Birthday:  birthday,
	}
	require.NoError(t, r.Create(ownerID, contact))

	return contact
}

func birthdayNames(contacts []model.Contact) []string {
	names := make([]string, 0, len(contacts))
	for _, c := range contacts {
		names = append(names, c.FirstName)
	}

	return names
}

func TestUpcomingBirthdaysWindow(t *testing.T) {
	users, contacts := newTestRepos(t)
	owner := createTestUser(t, users, "owner-a", "a@example.com")

	addContactWithBirthday(t, contacts, owner.ID, "InWindow", model.NewDate(1990, time.June, 30))
	addContactWithBirthday(t, contacts, owner.ID, "Today", model.NewDate(1980, time.June, 25))
	addContactWithBirthday(t, contacts, owner.ID, "TooLate", model.NewDate(1992, time.July, 10))
	addContactWithBirthday(t, contacts, owner.ID, "Yesterday", model.NewDate(1970, time.June, 24))

	today := time.Date(2024, time.June, 25, 10, 30, 0, 0, time.UTC)

	got, err := contacts.UpcomingBirthdays(owner.ID, today)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"InWindow", "Today"}, birthdayNames(got))
}

func TestUpcomingBirthdaysWrapsYearBoundary(t *testing.T) {
	users, contacts := newTestRepos(t)
	owner := createTestUser(t, users, "owner-a", "a@example.com")

	addContactWithBirthday(t, contacts, owner.ID, "BeforeNewYear", model.NewDate(1988, time.December, 29))
	addContactWithBirthday(t, contacts, owner.ID, "AfterNewYear", model.NewDate(1991, time.January, 1))
	addContactWithBirthday(t, contacts, owner.ID, "MidSummer", model.NewDate(1991, time.June, 15))

	// Window runs Dec 28 through Jan 3, crossing into the next year
	today := time.Date(2024, time.December, 28, 0, 0, 0, 0, time.UTC)

	got, err := contacts.UpcomingBirthdays(owner.ID, today)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"BeforeNewYear", "AfterNewYear"}, birthdayNames(got))
}

func TestUpcomingBirthdaysLeapDay(t *testing.T) {
	users, contacts := newTestRepos(t)
	owner := createTestUser(t, users, "owner-a", "a@example.com")

	addContactWithBirthday(t, contacts, owner.ID, "LeapBaby", model.NewDate(1996, time.February, 29))

	// 2025 is not a leap year, the birthday is observed on Feb 28
	today := time.Date(2025, time.February, 24, 0, 0, 0, 0, time.UTC)

	got, err := contacts.UpcomingBirthdays(owner.ID, today)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"LeapBaby"}, birthdayNames(got))
}

func TestUpcomingBirthdaysScopedToOwner(t *testing.T) {
	users, contacts := newTestRepos(t)
	ownerA := createTestUser(t, users, "owner-a", "a@example.com")
	ownerB := createTestUser(t, users, "owner-b", "b@example.com")

	addContactWithBirthday(t, contacts, ownerA.ID, "Mine", model.NewDate(1990, time.June, 26))
	addContactWithBirthday(t, contacts, ownerB.ID, "Theirs", model.NewDate(1990, time.June, 26))

	today := time.Date(2024, time.June, 25, 0, 0, 0, 0, time.UTC)

	got, err := contacts.UpcomingBirthdays(ownerA.ID, today)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Mine"}, birthdayNames(got))
}

func TestNextBirthdayProjection(t *testing.T) {
	today := time.Date(2024, time.December, 25, 0, 0, 0, 0, time.UTC)

	next := nextBirthday(time.Date(1991, time.January, 1, 0, 0, 0, 0, time.UTC), today)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), next)

	next = nextBirthday(time.Date(1988, time.December, 29, 0, 0, 0, 0, time.UTC), today)
	assert.Equal(t, time.Date(2024, time.December, 29, 0, 0, 0, 0, time.UTC), next)
}
