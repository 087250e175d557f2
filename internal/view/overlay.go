package view

// overlaySlot owns at most one overlay. Setting a new one detaches the old
// one first so two never coexist.
type overlaySlot struct {
	current Overlay
}

func (s *overlaySlot) Set(overlay Overlay) {
	s.Clear()
	s.current = overlay
}

func (s *overlaySlot) Clear() {
	if s.current != nil {
		s.current.Detach()
		s.current = nil
	}
}

func (s *overlaySlot) Attached() bool {
	return s.current != nil
}
