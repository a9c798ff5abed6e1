package app

// SeriesRole identifies what a rendered series represents, independent of
// any one chart library.
type SeriesRole string

const (
	RolePrice      SeriesRole = "price"
	RoleQuantity   SeriesRole = "quantity"
	RoleMAShort    SeriesRole = "ma_short"
	RoleMAMedium   SeriesRole = "ma_medium"
	RoleMALong     SeriesRole = "ma_long"
	RoleCandleUp   SeriesRole = "candle_up"
	RoleCandleDown SeriesRole = "candle_down"
)

// Palette maps series roles to display colors. It is a plain read-only
// table passed explicitly to chart builders; there is no process-wide
// mutable color state.
type Palette map[SeriesRole]string

// DefaultPalette returns the standard dashboard colors.
func DefaultPalette() Palette {
	return Palette{
		RolePrice:      "#f2a444",
		RoleQuantity:   "#4a90d9",
		RoleMAShort:    "#7bd389",
		RoleMAMedium:   "#d97bb6",
		RoleMALong:     "#9b7bd9",
		RoleCandleUp:   "#2ca02c",
		RoleCandleDown: "#d62728",
	}
}
