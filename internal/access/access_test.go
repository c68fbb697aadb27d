package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/srs-go-api/internal/models"
)

func TestResolveListScope(t *testing.T) {
	admin := models.Principal{UserID: "u1", Roles: []models.Role{models.RoleAdmin}}
	teacher := models.Principal{UserID: "u2", Roles: []models.Role{models.RoleTeacher}}
	viewer := models.Principal{UserID: "u3", Roles: []models.Role{models.RoleViewer}}
	both := models.Principal{UserID: "u4", Roles: []models.Role{models.RoleTeacher, models.RoleAdmin}}

	assert.True(t, ResolveListScope(admin).All)
	assert.Equal(t, Scope{OwnerID: "u2"}, ResolveListScope(teacher))
	assert.True(t, ResolveListScope(viewer).All)
	// admin wins over teacher when both are held
	assert.True(t, ResolveListScope(both).All)
}

func TestResolveEditScope(t *testing.T) {
	admin := models.Principal{UserID: "u1", Roles: []models.Role{models.RoleAdmin}}
	teacher := models.Principal{UserID: "u2", Roles: []models.Role{models.RoleTeacher}}
	viewer := models.Principal{UserID: "u3", Roles: []models.Role{models.RoleViewer}}

	assert.True(t, ResolveEditScope(admin).All)
	assert.Equal(t, Scope{OwnerID: "u2"}, ResolveEditScope(teacher))
	// viewers get an owner scope too, but hold no mutation permissions anyway
	assert.Equal(t, Scope{OwnerID: "u3"}, ResolveEditScope(viewer))
}

func TestScopeContains(t *testing.T) {
	assert.True(t, Scope{All: true}.Contains("anyone"))
	assert.True(t, Scope{OwnerID: "u2"}.Contains("u2"))
	assert.False(t, Scope{OwnerID: "u2"}.Contains("u9"))
}

func TestCan(t *testing.T) {
	admin := models.Principal{Roles: []models.Role{models.RoleAdmin}}
	teacher := models.Principal{Roles: []models.Role{models.RoleTeacher}}
	viewer := models.Principal{Roles: []models.Role{models.RoleViewer}}
	nobody := models.Principal{}

	assert.True(t, Can(admin, PermAddStudent))
	assert.True(t, Can(admin, PermChangeStudent))
	assert.True(t, Can(admin, PermDeleteStudent))

	assert.True(t, Can(teacher, PermAddStudent))
	assert.True(t, Can(teacher, PermChangeStudent))
	assert.False(t, Can(teacher, PermDeleteStudent))

	assert.False(t, Can(viewer, PermAddStudent))
	assert.False(t, Can(viewer, PermChangeStudent))
	assert.False(t, Can(viewer, PermDeleteStudent))

	assert.False(t, Can(nobody, PermAddStudent))
}

func TestCanMultiRole(t *testing.T) {
	p := models.Principal{Roles: []models.Role{models.RoleViewer, models.RoleTeacher}}
	assert.True(t, Can(p, PermAddStudent))
	assert.False(t, Can(p, PermDeleteStudent))
}
