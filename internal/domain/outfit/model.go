package outfit

// None marks a slot that carries no item.
const None = "None"

// Slot names an outfit position that is shown to the user.
type Slot string

const (
	SlotHat   Slot = "hat"
	SlotCoat  Slot = "coat"
	SlotLayer Slot = "layer"
	SlotPants Slot = "pants"
	SlotShoes Slot = "shoes"
)

// DisplaySlots lists the slots in the order they appear in the outfit one-liner.
// Socks are intentionally not part of it.
var DisplaySlots = []Slot{SlotHat, SlotCoat, SlotLayer, SlotPants, SlotShoes}

// Observation is the weather snapshot advice is derived from. Temperatures are in °F.
type Observation struct {
	TempMax     float64 `json:"temp_max" yaml:"temp_max"`
	TempMin     float64 `json:"temp_min" yaml:"temp_min"`
	CurrentTemp float64 `json:"current_temp" yaml:"current_temp"`
	FeelsLike   float64 `json:"feels_like" yaml:"feels_like"`
	PrecipProb  float64 `json:"precip_prob" yaml:"precip_prob"`
	WeatherCode int     `json:"weathercode" yaml:"weathercode"`
}

// Recommendation is the outfit suggested for an observation.
type Recommendation struct {
	Text           string               `json:"text" yaml:"text"`
	Summary        string               `json:"summary" yaml:"summary"`
	ColorTheme     string               `json:"color_theme" yaml:"color_theme"`
	Hat            string               `json:"hat" yaml:"hat"`
	Coat           string               `json:"coat" yaml:"coat"`
	Layer          string               `json:"layer" yaml:"layer"`
	Pants          string               `json:"pants" yaml:"pants"`
	Socks          string               `json:"socks" yaml:"socks"`
	Shoes          string               `json:"shoes" yaml:"shoes"`
	OutfitOneliner string               `json:"outfit_oneliner" yaml:"outfit_oneliner"`
	Display        map[Slot]SlotDisplay `json:"display,omitempty" yaml:"display,omitempty"`
}

// SlotDisplay holds what the page shows for a slot. Empty fields mean absent.
type SlotDisplay struct {
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	Image string `json:"image,omitempty" yaml:"image,omitempty"`
}

// Item returns the generic item name for a display slot.
func (r *Recommendation) Item(slot Slot) string {
	switch slot {
	case SlotHat:
		return r.Hat
	case SlotCoat:
		return r.Coat
	case SlotLayer:
		return r.Layer
	case SlotPants:
		return r.Pants
	case SlotShoes:
		return r.Shoes
	default:
		return ""
	}
}

// Label returns the resolved label for a slot, or "" when none was resolved.
func (r *Recommendation) Label(slot Slot) string {
	return r.Display[slot].Label
}

// Image returns the resolved image reference for a slot, or "".
func (r *Recommendation) Image(slot Slot) string {
	return r.Display[slot].Image
}

// ItemConfig is a single wardrobe entry.
type ItemConfig struct {
	Label string `json:"label"`
	Image string `json:"image,omitempty"`
}

// Wardrobe maps slot -> generic item name -> custom display entry.
type Wardrobe map[Slot]map[string]ItemConfig

// Request carries the raw coordinates supplied by the caller.
type Request struct {
	Latitude  string `json:"lat" form:"lat"`
	Longitude string `json:"lon" form:"lon"`
}

// Location is the resolved place a recommendation was computed for.
type Location struct {
	Label     string  `json:"label"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	Default   bool    `json:"default"`
}

// Response is returned to the presentation layer. Weather and Advice are nil
// when the forecast could not be fetched.
type Response struct {
	Location Location        `json:"location"`
	Weather  *Observation    `json:"weather"`
	Advice   *Recommendation `json:"advice"`
}

// Available reports whether weather data, and therefore advice, is present.
func (r Response) Available() bool {
	return r.Weather != nil && r.Advice != nil
}

// Config wires runtime defaults for the outfit service.
type Config struct {
	DefaultLatitude  float64
	DefaultLongitude float64
	DefaultLabel     string
}
