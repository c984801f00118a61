package engine

import "testing"

func TestTileDiminishFullArrow(t *testing.T) {
	if TileUp.Diminish() != TileUpHalf {
		t.Errorf("Expected up arrow to diminish to half, got %v", TileUp.Diminish())
	}
	if TileDown.Diminish() != TileDownHalf {
		t.Errorf("Expected down arrow to diminish to half, got %v", TileDown.Diminish())
	}
	if TileLeft.Diminish() != TileLeftHalf {
		t.Errorf("Expected left arrow to diminish to half, got %v", TileLeft.Diminish())
	}
	if TileRight.Diminish() != TileRightHalf {
		t.Errorf("Expected right arrow to diminish to half, got %v", TileRight.Diminish())
	}
}

func TestTileDiminishHalfArrow(t *testing.T) {
	for _, tile := range []TileType{TileUpHalf, TileDownHalf, TileLeftHalf, TileRightHalf} {
		if tile.Diminish() != TileEmpty {
			t.Errorf("Expected %v to diminish to empty, got %v", tile, tile.Diminish())
		}
	}
}

func TestTileDiminishOther(t *testing.T) {
	if TileEmpty.Diminish() != TileEmpty {
		t.Errorf("Expected empty to stay empty, got %v", TileEmpty.Diminish())
	}
	if TileHole.Diminish() != TileHole {
		t.Errorf("Expected hole to stay hole, got %v", TileHole.Diminish())
	}
	if TileRocket.Diminish() != TileRocket {
		t.Errorf("Expected rocket to stay rocket, got %v", TileRocket.Diminish())
	}
}

func TestTileDirection(t *testing.T) {
	cases := []struct {
		tile     TileType
		expected Direction
	}{
		{TileUp, DirUp},
		{TileUpHalf, DirUp},
		{TileDown, DirDown},
		{TileDownHalf, DirDown},
		{TileLeft, DirLeft},
		{TileLeftHalf, DirLeft},
		{TileRight, DirRight},
		{TileRightHalf, DirRight},
	}
	for _, c := range cases {
		dir, ok := c.tile.Direction()
		if !ok {
			t.Fatalf("Expected %v to have a direction", c.tile)
		}
		if dir != c.expected {
			t.Errorf("Expected %v direction for %v, got %v", c.expected, c.tile, dir)
		}
	}

	for _, tile := range []TileType{TileEmpty, TileRocket, TileHole} {
		if _, ok := tile.Direction(); ok {
			t.Errorf("Expected %v to have no direction", tile)
		}
	}
}
