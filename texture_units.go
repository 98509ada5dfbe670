// texture_units.go - Explicit texture unit binding table

package textmode

import "fmt"

// TEXTURE_UNITS is the number of source slots a compositing draw can bind.
// It matches ebiten's shader source image count.
const TEXTURE_UNITS = 4

// TextureRole names one of the four textures the compositor binds.
type TextureRole int

const (
	RoleAtlas TextureRole = iota
	RoleGlyph
	RoleForeground
	RoleBackground
)

var textureRoles = [...]TextureRole{RoleAtlas, RoleGlyph, RoleForeground, RoleBackground}

func (r TextureRole) String() string {
	switch r {
	case RoleAtlas:
		return "atlas"
	case RoleGlyph:
		return "glyph"
	case RoleForeground:
		return "foreground"
	case RoleBackground:
		return "background"
	}
	return fmt.Sprintf("TextureRole(%d)", int(r))
}

// BindingTable assigns each texture role a fixed unit. Backends bind by
// looking roles up here, never by call order.
type BindingTable struct {
	Atlas      int `toml:"atlas"`
	Glyph      int `toml:"glyph"`
	Foreground int `toml:"foreground"`
	Background int `toml:"background"`
}

// DefaultBindings returns {atlas: 0, glyph: 1, foreground: 2, background: 3}.
func DefaultBindings() BindingTable {
	return BindingTable{Atlas: 0, Glyph: 1, Foreground: 2, Background: 3}
}

// Unit returns the unit bound to role.
func (b BindingTable) Unit(role TextureRole) int {
	switch role {
	case RoleAtlas:
		return b.Atlas
	case RoleGlyph:
		return b.Glyph
	case RoleForeground:
		return b.Foreground
	case RoleBackground:
		return b.Background
	}
	return -1
}

// RoleAt is the inverse of Unit.
func (b BindingTable) RoleAt(unit int) (TextureRole, bool) {
	for _, role := range textureRoles {
		if b.Unit(role) == unit {
			return role, true
		}
	}
	return 0, false
}

// Validate checks that every unit is in range and no two roles share one.
func (b BindingTable) Validate() error {
	var used [TEXTURE_UNITS]bool
	for _, role := range textureRoles {
		unit := b.Unit(role)
		if unit < 0 || unit >= TEXTURE_UNITS {
			return fmt.Errorf("%s bound to unit %d, want 0..%d", role, unit, TEXTURE_UNITS-1)
		}
		if used[unit] {
			return fmt.Errorf("%s bound to unit %d which is already in use", role, unit)
		}
		used[unit] = true
	}
	return nil
}
