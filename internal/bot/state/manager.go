package state

import "sync"

// User states constants
const (
	None                     = "none"
	WaitingForFood           = "waiting_for_food"
	WaitingForManualCalories = "waiting_for_manual_calories"
	WaitingForExercise       = "waiting_for_exercise"
	WaitingForProfile        = "waiting_for_profile"
)

// Temp data keys
const (
	KeyFoodName     = "food_name"
	KeyFoodQuantity = "food_quantity"
)

// StateManager tracks per-user conversation state between messages
type StateManager interface {
	SetUserState(userID int64, state string)
	GetUserState(userID int64) string
	ClearUserState(userID int64)
	SetTempData(userID int64, key string, value string)
	GetTempData(userID int64, key string) (string, bool)
	ClearTempData(userID int64)
}

// Manager manages user states and temporary data in memory
type Manager struct {
	userStates map[int64]string
	tempData   map[int64]map[string]string
	mu         sync.RWMutex
}

// NewManager creates a new state manager
func NewManager() *Manager {
	return &Manager{
		userStates: make(map[int64]string),
		tempData:   make(map[int64]map[string]string),
	}
}

// SetUserState sets the state for a user
func (m *Manager) SetUserState(userID int64, state string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userStates[userID] = state
}

// GetUserState gets the state for a user
func (m *Manager) GetUserState(userID int64) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, exists := m.userStates[userID]
	if !exists {
		return None
	}
	return state
}

// ClearUserState clears the state for a user
func (m *Manager) ClearUserState(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.userStates, userID)
}

// SetTempData sets temporary data for a user
func (m *Manager) SetTempData(userID int64, key string, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tempData[userID] == nil {
		m.tempData[userID] = make(map[string]string)
	}
	m.tempData[userID][key] = value
}

// GetTempData gets temporary data for a user
func (m *Manager) GetTempData(userID int64, key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	userData, exists := m.tempData[userID]
	if !exists {
		return "", false
	}
	value, exists := userData[key]
	return value, exists
}

// ClearTempData clears all temporary data for a user
func (m *Manager) ClearTempData(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tempData, userID)
}
