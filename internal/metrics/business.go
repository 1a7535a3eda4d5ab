package metrics

// IncrementProjectCreated increments project creation counter
func (m *Metrics) IncrementProjectCreated() {
	m.safeExecute("IncrementProjectCreated", func() {
		m.ProjectCreatedTotal.Inc()
	})
}

// IncrementBoardCreated increments board creation counter
func (m *Metrics) IncrementBoardCreated() {
	m.safeExecute("IncrementBoardCreated", func() {
		m.BoardCreatedTotal.Inc()
	})
}

// IncrementCardCreated increments card creation counter
func (m *Metrics) IncrementCardCreated() {
	m.safeExecute("IncrementCardCreated", func() {
		m.CardCreatedTotal.Inc()
	})
}

// IncrementReorder counts a completed reorder for a resource kind
func (m *Metrics) IncrementReorder(resource string) {
	m.safeExecute("IncrementReorder", func() {
		m.ReorderTotal.WithLabelValues(resource).Inc()
	})
}

// IncrementRenumber counts a reorder that renumbered the whole sibling set
func (m *Metrics) IncrementRenumber(resource string) {
	m.safeExecute("IncrementRenumber", func() {
		m.RenumberTotal.WithLabelValues(resource).Inc()
	})
}

// IncrementLifecycle counts an archive or restore of a resource kind
func (m *Metrics) IncrementLifecycle(resource, action string) {
	m.safeExecute("IncrementLifecycle", func() {
		m.LifecycleTotal.WithLabelValues(resource, action).Inc()
	})
}

// IncrementVersionConflict counts a rejected stale-version update
func (m *Metrics) IncrementVersionConflict() {
	m.safeExecute("IncrementVersionConflict", func() {
		m.VersionConflictsTotal.Inc()
	})
}

// SetProjectsTotal sets total projects gauge
func (m *Metrics) SetProjectsTotal(count int64) {
	m.safeExecute("SetProjectsTotal", func() {
		m.ProjectsTotal.Set(float64(count))
	})
}

// SetBoardsTotal sets total boards gauge
func (m *Metrics) SetBoardsTotal(count int64) {
	m.safeExecute("SetBoardsTotal", func() {
		m.BoardsTotal.Set(float64(count))
	})
}

// SetCardsTotal sets total cards gauge
func (m *Metrics) SetCardsTotal(count int64) {
	m.safeExecute("SetCardsTotal", func() {
		m.CardsTotal.Set(float64(count))
	})
}
