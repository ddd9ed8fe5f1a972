package metrics

// IncrementFieldDefinitionCreated increments the field definition creation counter
func (m *Metrics) IncrementFieldDefinitionCreated() {
	m.safeExecute("IncrementFieldDefinitionCreated", func() {
		m.FieldDefinitionCreatedTotal.Inc()
	})
}

// IncrementTaskCreated increments the task creation counter
func (m *Metrics) IncrementTaskCreated() {
	m.safeExecute("IncrementTaskCreated", func() {
		m.TaskCreatedTotal.Inc()
	})
}

// IncrementValueValidationFailure increments the rejected-value counter for a field type
func (m *Metrics) IncrementValueValidationFailure(fieldType string) {
	m.safeExecute("IncrementValueValidationFailure", func() {
		m.ValueValidationFailuresTotal.WithLabelValues(fieldType).Inc()
	})
}

// AddTaskValuesCleaned adds to the impact-cleanup counter
func (m *Metrics) AddTaskValuesCleaned(count int) {
	m.safeExecute("AddTaskValuesCleaned", func() {
		m.TaskValuesCleanedTotal.Add(float64(count))
	})
}

// SetBoardsTotal sets the total boards gauge
func (m *Metrics) SetBoardsTotal(count int64) {
	m.safeExecute("SetBoardsTotal", func() {
		m.BoardsTotal.Set(float64(count))
	})
}

// SetFieldDefinitionsTotal sets the total field definitions gauge
func (m *Metrics) SetFieldDefinitionsTotal(count int64) {
	m.safeExecute("SetFieldDefinitionsTotal", func() {
		m.FieldDefinitionsTotal.Set(float64(count))
	})
}

// SetTasksTotal sets the total tasks gauge
func (m *Metrics) SetTasksTotal(count int64) {
	m.safeExecute("SetTasksTotal", func() {
		m.TasksTotal.Set(float64(count))
	})
}
