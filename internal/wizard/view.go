package wizard

type StepInfo struct {
	Num       int    `json:"num"`
	Label     string `json:"label"`
	Icon      string `json:"icon"`
	Done      bool   `json:"done"`
	Current   bool   `json:"current"`
	Reachable bool   `json:"reachable"`
}

// View is the render model of the wizard: everything a page or API client
// needs to draw the current step and its enabled controls.
type View struct {
	Step            int             `json:"step"`
	StepLabel       string          `json:"stepLabel"`
	Steps           []StepInfo      `json:"steps"`
	Draft           Draft           `json:"draft"`
	Templates       []Template      `json:"templates,omitempty"`
	Template        *Template       `json:"template,omitempty"`
	Suggestion      *PriceReference `json:"suggestion,omitempty"`
	CanAdvance      bool            `json:"canAdvance"`
	CanGoBack       bool            `json:"canGoBack"`
	PhotoSlots      int             `json:"photoSlots"`
	Submitted       bool            `json:"submitted"`
	RedirectTo      string          `json:"redirectTo,omitempty"`
	RedirectAfterMs int64           `json:"redirectAfterMs,omitempty"`
}

func (w *Wizard) View() View {
	w.mu.Lock()
	defer w.mu.Unlock()

	d := w.draft
	d.Photos = append([]Photo(nil), w.draft.Photos...)
	v := View{
		Step:       int(w.step),
		StepLabel:  w.step.String(),
		Draft:      d,
		CanAdvance: w.canAdvanceLocked(),
		CanGoBack:  w.step > StepItemType && w.step < StepSubmitted,
		PhotoSlots: MaxPhotos - len(d.Photos),
		Submitted:  w.step == StepSubmitted,
	}
	for s := StepItemType; s <= StepReview; s++ {
		l := stepLabels[s]
		v.Steps = append(v.Steps, StepInfo{
			Num:       int(s),
			Label:     l.label,
			Icon:      l.icon,
			Done:      w.step > s,
			Current:   w.step == s,
			Reachable: s <= w.step && w.step != StepSubmitted,
		})
	}
	if w.step == StepItemType {
		v.Templates = Templates()
	}
	if t, ok := templates[d.ItemType]; ok {
		v.Template = &t
	}
	if p, ok := priceReference[d.ItemType]; ok {
		v.Suggestion = &p
	}
	if v.Submitted {
		v.RedirectTo = RedirectTarget
		v.RedirectAfterMs = w.redirectDelay.Milliseconds()
	}
	return v
}
