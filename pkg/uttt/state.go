package uttt

// History entry of the position, used for undo functionality
type historyEntry struct {
	move      Move
	prevLast  Move        // last move before this one was made
	prevLocal LocalResult // state of the local board before the move
}

// Stores the history of the position as a slice of entries
type StateList struct {
	list []historyEntry
}

// Get new StateList object
func NewStateList() *StateList {
	return &StateList{list: make([]historyEntry, 0, 81)}
}

// Append new state
func (sl *StateList) Append(move, prevLast Move, prevLocal LocalResult) {
	sl.list = append(sl.list, historyEntry{move, prevLast, prevLocal})
}

// Reset all states (remove them)
func (sl *StateList) Clear() {
	sl.list = sl.list[:0]
}

// Remove last state
func (sl *StateList) Remove() {
	sl.list = sl.list[:len(sl.list)-1]
}

func (sl *StateList) Size() int {
	return len(sl.list)
}

// Get the last element of the state list
func (sl *StateList) Last() *historyEntry {
	return &sl.list[len(sl.list)-1]
}

// Moves played so far, oldest first
func (sl *StateList) Moves() []Move {
	moves := make([]Move, len(sl.list))
	for i := range sl.list {
		moves[i] = sl.list[i].move
	}
	return moves
}

func (sl *StateList) Clone() *StateList {
	c := &StateList{list: make([]historyEntry, len(sl.list), max(cap(sl.list), 81))}
	copy(c.list, sl.list)
	return c
}
