package outfit

import "strings"

const oneLinerSeparator = " | "

type rule struct {
	when  func(Observation) bool
	apply func(*Recommendation)
}

// Rule groups run in order. Within a group the first matching rule wins; every
// group reads only the observation, so a later group simply clobbers whatever
// fields an earlier one assigned.
var ruleGroups = [][]rule{
	{
		{
			when:  func(o Observation) bool { return o.PrecipProb > 50 },
			apply: func(r *Recommendation) {
				r.Text = "Rain likely — shell and waterproof shoes."
				r.Summary = "Full rain gear — shell + waterproof shoes."
				r.Coat = "Rain Shell"
				r.Shoes = "Doc Martens"
				r.ColorTheme = "#778899"
			},
		},
		{
			when:  func(o Observation) bool { return o.PrecipProb > 20 },
			apply: func(r *Recommendation) {
				r.Text = "Showers possible — bring a packable shell."
				r.Summary = "Layer up + bring a shell."
				r.Coat = "Pack Shell"
			},
		},
	},
	{
		{
			when:  func(o Observation) bool { return o.TempMax < 40 },
			apply: func(r *Recommendation) {
				r.Text = "Cold — coat, layers, and warm shoes."
				r.Summary = "Full cozy mode — coat, layers, beanie."
				r.Coat = "Brown Wool Coat"
				r.Layer = "Flannel"
				r.Hat = "Beanie"
				r.Socks = "Wool Socks"
				r.ColorTheme = "#B0C4DE"
			},
		},
		{
			when:  func(o Observation) bool { return o.TempMax < 60 },
			apply: func(r *Recommendation) {
				r.Text = "Chilly — layer up with a hoodie."
				r.Summary = "Layer up — jacket optional, pack light."
				r.Layer = "Hoodie"
			},
		},
	},
}

// Baseline is the recommendation for dry, mild weather.
func Baseline() Recommendation {
	return Recommendation{
		Text:       "Pack a layer, you might need it.",
		Summary:    "Layer up + be ready for anything.",
		ColorTheme: "#87CEEB",
		Hat:        None,
		Coat:       None,
		Layer:      "T-Shirt",
		Pants:      "Chinos",
		Socks:      "Ankle Socks",
		Shoes:      "Vans",
	}
}

// DeriveAdvice applies the fixed rule table to an observation. It is pure and
// never fails.
func DeriveAdvice(obs Observation) Recommendation {
	draft := Baseline()
	for _, group := range ruleGroups {
		for _, r := range group {
			if r.when(obs) {
				r.apply(&draft)
				break
			}
		}
	}
	draft.OutfitOneliner = genericOneliner(&draft)
	return draft
}

func genericOneliner(r *Recommendation) string {
	parts := make([]string, 0, len(DisplaySlots))
	for _, slot := range DisplaySlots {
		if v := r.Item(slot); present(v) {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return r.Layer + oneLinerSeparator + r.Pants + oneLinerSeparator + r.Shoes
	}
	return strings.Join(parts, oneLinerSeparator)
}

func present(item string) bool {
	return item != "" && item != None
}
