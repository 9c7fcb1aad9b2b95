package wizard

// Template describes one item type the seller can list: the spec and
// condition choices offered on the Details step.
type Template struct {
	Key        string   `json:"key"`
	Name       string   `json:"name"`
	Icon       string   `json:"icon"`
	Specs      []string `json:"specs"`
	Conditions []string `json:"conditions"`
}

// PriceReference is advisory only; the entered price is never checked against it.
type PriceReference struct {
	Base  int    `json:"base"`
	Range [2]int `json:"range"`
}

// templateOrder is the display order of the item type chooser.
var templateOrder = []string{"laptop", "phone", "washingmachine", "refrigerator", "tv", "pcb"}

var templates = map[string]Template{
	"laptop": {
		Key: "laptop", Name: "Laptop", Icon: "💻",
		Specs:      []string{`13" Basic`, `15" Mid-Range`, `17" High-End`},
		Conditions: []string{"Working", "Broken Screen", "Heat Stressed", "Non-Functional"},
	},
	"phone": {
		Key: "phone", Name: "Smartphone", Icon: "📱",
		Specs:      []string{"Budget Phone", "Mid-Range", "Flagship"},
		Conditions: []string{"Working", "Screen Damage", "Water Damage", "Non-Functional"},
	},
	"washingmachine": {
		Key: "washingmachine", Name: "Washing Machine", Icon: "🧺",
		Specs:      []string{"5-6 kg", "7-8 kg", "9+ kg"},
		Conditions: []string{"Working", "Motor Issues", "Electrical Fault", "Non-Functional"},
	},
	"refrigerator": {
		Key: "refrigerator", Name: "Refrigerator", Icon: "❄️",
		Specs:      []string{"Single Door", "Double Door", "Side-by-Side"},
		Conditions: []string{"Working", "Cooling Issue", "Minor Fault", "Non-Functional"},
	},
	"tv": {
		Key: "tv", Name: "Television", Icon: "📺",
		Specs:      []string{`32" LED/LCD`, `43-50" LED/LCD`, `55"+ LED/LCD`},
		Conditions: []string{"Working", "Display Damage", "Power Issue", "Non-Functional"},
	},
	"pcb": {
		Key: "pcb", Name: "PCB/Motherboard", Icon: "🔌",
		Specs:      []string{"Laptop PCB", "Desktop PCB", "Server PCB"},
		Conditions: []string{"Heat Stressed", "Damaged", "Corroded", "Mixed Scrap"},
	},
}

var priceReference = map[string]PriceReference{
	"laptop":         {Base: 1500, Range: [2]int{1000, 3000}},
	"phone":          {Base: 800, Range: [2]int{300, 2000}},
	"washingmachine": {Base: 2000, Range: [2]int{1000, 5000}},
	"refrigerator":   {Base: 3500, Range: [2]int{2000, 6000}},
	"tv":             {Base: 2500, Range: [2]int{1500, 5000}},
	"pcb":            {Base: 2000, Range: [2]int{500, 5000}},
}

// Templates returns every item template in chooser order.
func Templates() []Template {
	out := make([]Template, 0, len(templateOrder))
	for _, k := range templateOrder {
		out = append(out, templates[k])
	}
	return out
}

func LookupTemplate(key string) (Template, bool) {
	t, ok := templates[key]
	return t, ok
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
