package directory

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestList_SearchMatchesNameAndEmail(t *testing.T) {
	s := NewService(zerolog.Nop())

	byName, total := s.List("cedar", 0, 10)
	require.Equal(t, 1, total)
	require.Equal(t, "Cedar & Sage Catering", byName[0].BusinessName)

	byEmail, total := s.List("northforkcreamery.com", 0, 10)
	require.Equal(t, 1, total)
	require.Equal(t, "North Fork Creamery", byEmail[0].BusinessName)

	_, total = s.List("no such business", 0, 10)
	require.Zero(t, total)
}

func TestList_Pagination(t *testing.T) {
	s := NewService(zerolog.Nop())

	page1, total := s.List("", 0, 5)
	page2, _ := s.List("", 5, 5)
	page3, _ := s.List("", 10, 5)

	require.Equal(t, 12, total)
	require.Len(t, page1, 5)
	require.Len(t, page2, 5)
	require.Len(t, page3, 2)

	// No overlap between pages
	seen := map[string]bool{}
	for _, a := range append(append(page1, page2...), page3...) {
		require.False(t, seen[a.ID], "account %s appeared twice", a.ID)
		seen[a.ID] = true
	}

	// Offset past the end yields an empty page, not an error
	empty, total := s.List("", 100, 5)
	require.Equal(t, 12, total)
	require.Empty(t, empty)
}

func TestList_NewestFirst(t *testing.T) {
	s := NewService(zerolog.Nop())
	created := s.Create(Account{BusinessName: "Newest Co", Email: "n@n.co"})

	page, _ := s.List("", 0, 1)
	require.Equal(t, created.ID, page[0].ID)
}

func TestCreateAssignsIDAndTimestamp(t *testing.T) {
	s := NewService(zerolog.Nop())

	created := s.Create(Account{BusinessName: "X", Email: "x@x.co"})
	require.NotEmpty(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())

	got, err := s.Get(created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)
}

func TestUpdatePreservesIdentity(t *testing.T) {
	s := NewService(zerolog.Nop())
	created := s.Create(Account{BusinessName: "Before", Email: "b@b.co"})

	updated, err := s.Update(created.ID, Account{
		ID:           "attempted-override",
		BusinessName: "After",
		Email:        "b@b.co",
	})
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, created.CreatedAt, updated.CreatedAt)
	require.Equal(t, "After", updated.BusinessName)
}

func TestUpdateAndDeleteUnknownID(t *testing.T) {
	s := NewService(zerolog.Nop())

	_, err := s.Update("missing", Account{})
	require.ErrorIs(t, err, ErrAccountNotFound)

	require.ErrorIs(t, s.Delete("missing"), ErrAccountNotFound)

	_, err = s.Get("missing")
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestDelete(t *testing.T) {
	s := NewService(zerolog.Nop())
	created := s.Create(Account{BusinessName: "Gone", Email: "g@g.co"})

	require.NoError(t, s.Delete(created.ID))

	_, err := s.Get(created.ID)
	require.ErrorIs(t, err, ErrAccountNotFound)
}
