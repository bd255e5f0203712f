package user

import (
	"testing"

	domain "github.com/kuba-04/task-manager-rest-demo/domain/user"
	"github.com/stretchr/testify/require"
)

func newUser(t *testing.T, firstName, lastName, email string) *domain.User {
	t.Helper()

	u, err := domain.New(domain.NewID(), firstName, lastName, email)
	require.NoError(t, err)
	return u
}

func parseID(t *testing.T, s string) domain.ID {
	t.Helper()

	id, err := domain.ParseID(s)
	require.NoError(t, err)
	return id
}
