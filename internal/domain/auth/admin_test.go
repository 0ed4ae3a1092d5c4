package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRoleName(t *testing.T) {
	t.Parallel()

	composed := "Di\u00e1cono"    // á as a single code point
	decomposed := "Dia\u0301cono" // a + combining acute

	tests := []struct {
		name string
		a, b string
	}{
		{"case", "ADMINISTRADOR DO SISTEMA", "administrador do sistema"},
		{"surrounding whitespace", "  Administrador do Sistema \t\n", "administrador do sistema"},
		{"composition form", composed, decomposed},
		{"composition and case", "  DIÁCONO ", composed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, NormalizeRoleName(tt.a), NormalizeRoleName(tt.b))
		})
	}
}

func TestNormalizeRoleName_Idempotent(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"Administrador do Sistema ", "Diácono", "ÂNCIÃO", ""} {
		once := NormalizeRoleName(in)
		assert.Equal(t, once, NormalizeRoleName(once), "input %q", in)
	}
}

func TestAdminPolicy_IsAdmin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		sentinel string
		roles    []string
		want     bool
	}{
		{"exact", "", []string{"Administrador do Sistema"}, true},
		{"mixed case trailing space", "", []string{"administrador DO sistema "}, true},
		{"among others", "", []string{"Diácono", "Administrador do Sistema"}, true},
		{"absent", "", []string{"Diácono", "Ancião"}, false},
		{"empty", "", nil, false},
		{"substring only", "", []string{"Administrador do Sistema Regional"}, false},
		{"custom sentinel", "Pastor", []string{" pastor"}, true},
		{"custom sentinel blank falls back", "   ", []string{"ADMINISTRADOR DO SISTEMA"}, true},
		{"decomposed sentinel", "Administra\u00e7\u00e3o", []string{"Administrac\u0327a\u0303o"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := AdminPolicy{SentinelRole: tt.sentinel}
			assert.Equal(t, tt.want, p.IsAdmin(tt.roles))
		})
	}
}

func TestNewRoleSet_SkipsBlank(t *testing.T) {
	t.Parallel()

	set := NewRoleSet([]string{"  ", "", "Diácono", "DIÁCONO"})
	assert.Len(t, set, 1)
	assert.True(t, set.Has("diácono"))
}
