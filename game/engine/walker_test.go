package engine

import "testing"

func TestMouseWalkerIndicatesNewSquare(t *testing.T) {
	walker := NewWalker(0, 0, DirRight, WalkerMouse)

	for step := 1; step <= 180; step++ {
		result := walker.Walk()
		if step%60 == 0 {
			if result != WalkNewSquare {
				t.Errorf("Expected new square on step %d", step)
			}
		} else if result != WalkNone {
			t.Errorf("Expected no new square on step %d", step)
		}
	}
}

func TestCatWalkerIndicatesNewSquare(t *testing.T) {
	walker := NewWalker(0, 0, DirRight, WalkerCat)

	for step := 1; step <= 180; step++ {
		result := walker.Walk()
		if step%90 == 0 {
			if result != WalkNewSquare {
				t.Errorf("Expected new square on step %d", step)
			}
		} else if result != WalkNone {
			t.Errorf("Expected no new square on step %d", step)
		}
	}
}

func TestWalkerWrapsAtGridEdges(t *testing.T) {
	right := NewWalker(11, 0, DirRight, WalkerMouse)
	for i := 0; i < 60; i++ {
		right.Walk()
	}
	if right.X().IntegerPart() != 0 {
		t.Errorf("Expected rightward walker to wrap to x=0, got %d", right.X().IntegerPart())
	}

	left := NewWalker(0, 0, DirLeft, WalkerMouse)
	for i := 0; i < 60; i++ {
		left.Walk()
	}
	if left.X().IntegerPart() != 11 {
		t.Errorf("Expected leftward walker to wrap to x=11, got %d", left.X().IntegerPart())
	}

	up := NewWalker(0, 0, DirUp, WalkerMouse)
	for i := 0; i < 60; i++ {
		up.Walk()
	}
	if up.Y().IntegerPart() != 8 {
		t.Errorf("Expected upward walker to wrap to y=8, got %d", up.Y().IntegerPart())
	}

	down := NewWalker(0, 8, DirDown, WalkerMouse)
	for i := 0; i < 60; i++ {
		down.Walk()
	}
	if down.Y().IntegerPart() != 0 {
		t.Errorf("Expected downward walker to wrap to y=0, got %d", down.Y().IntegerPart())
	}
}

func TestWalkerLifecycle(t *testing.T) {
	rescued := NewWalker(0, 0, DirRight, WalkerMouse)
	rescued.Rescue()
	if rescued.State() != WalkerRescued {
		t.Errorf("Expected rescued state, got %v", rescued.State())
	}

	killed := NewWalker(0, 0, DirRight, WalkerMouse)
	killed.Kill()
	if killed.State() != WalkerDead {
		t.Errorf("Expected dead state, got %v", killed.State())
	}
}

func TestWalkerKillPanicsUnlessAlive(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected a panic when killing a dead walker")
		}
	}()

	walker := NewWalker(0, 0, DirRight, WalkerMouse)
	walker.Kill()
	walker.Kill()
}

func TestWalkerRescuePanicsUnlessAlive(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected a panic when rescuing a rescued walker")
		}
	}()

	walker := NewWalker(0, 0, DirRight, WalkerMouse)
	walker.Rescue()
	walker.Rescue()
}
