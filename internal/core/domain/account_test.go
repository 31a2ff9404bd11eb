package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveRole(t *testing.T) {
	assert.Equal(t, RoleTutor, ResolveRole("Tutor"))
	assert.Equal(t, RoleTutor, ResolveRole(" TUTOR "))
	assert.Equal(t, RoleStudent, ResolveRole("Student"))
	assert.Equal(t, RoleStudent, ResolveRole(""))
	assert.Equal(t, RoleStudent, ResolveRole("whatever"))
	assert.Equal(t, RoleStudent, ResolveRole("admin"), "self-service never yields Admin")
	assert.Equal(t, RoleStudent, ResolveRole(" Admin "))
}

func TestRoleID(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleStudent.Valid())
	assert.True(t, RoleTutor.Valid())
	assert.False(t, RoleID(0).Valid())
	assert.False(t, RoleID(999).Valid())

	assert.Equal(t, "Admin", RoleAdmin.Name())
	assert.Equal(t, "Tutor", RoleTutor.Name())
	assert.Equal(t, "", RoleID(42).Name())
}

func TestIdentityOf(t *testing.T) {
	a := &Account{ID: 9, Username: "newu", FirstName: "New", RoleID: RoleTutor}
	id := IdentityOf(a)
	assert.Equal(t, Identity{AccountID: 9, Username: "newu", FirstName: "New", RoleName: "Tutor", RoleID: RoleTutor}, id)
}
