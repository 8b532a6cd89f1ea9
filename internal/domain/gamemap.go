package domain

// Cell - одна клетка поля.
type Cell struct {
	X       int     `json:"x"`
	Z       int     `json:"z"`
	Terrain Terrain `json:"terrain"`
	TowerID string  `json:"towerId,omitempty"` // Клетка держит не больше одной башни
}

// GameMap - статическое описание поля: сетка и путь врагов.
// Карты неизменяемы после сборки; изменяемое состояние клеток (TowerID)
// живет в копии сетки внутри GameState.
type GameMap struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Cells  []Cell `json:"cells"` // Индекс: Z*Width + X

	// Путь врагов: первый элемент - точка спавна, последний - база
	Waypoints []Vec3 `json:"waypoints"`
}

// CellAt возвращает клетку по координатам (nil за границей)
func (m *GameMap) CellAt(x, z int) *Cell {
	if x < 0 || x >= m.Width || z < 0 || z >= m.Height {
		return nil
	}
	return &m.Cells[z*m.Width+x]
}

// IsBuildable возвращает true, если на клетке можно строить
func (m *GameMap) IsBuildable(x, z int) bool {
	c := m.CellAt(x, z)
	return c != nil && c.Terrain == TerrainGround && c.TowerID == ""
}

// SpawnPoint возвращает точку появления врагов
func (m *GameMap) SpawnPoint() Vec3 {
	return m.Waypoints[0]
}

// BasePoint возвращает позицию базы (конец пути)
func (m *GameMap) BasePoint() Vec3 {
	return m.Waypoints[len(m.Waypoints)-1]
}

// SegmentLength возвращает длину сегмента пути от waypoint[i] до waypoint[i+1].
// Нужна, чтобы скорость движения не зависела от нарезки пути на сегменты.
func (m *GameMap) SegmentLength(i int) float64 {
	if i < 0 || i >= len(m.Waypoints)-1 {
		return 0
	}
	return m.Waypoints[i].DistanceTo(m.Waypoints[i+1])
}

// Clone возвращает глубокую копию карты (для состояния отдельного игрока)
func (m *GameMap) Clone() *GameMap {
	cells := make([]Cell, len(m.Cells))
	copy(cells, m.Cells)
	waypoints := make([]Vec3, len(m.Waypoints))
	copy(waypoints, m.Waypoints)
	return &GameMap{
		Index: m.Index, Name: m.Name,
		Width: m.Width, Height: m.Height,
		Cells: cells, Waypoints: waypoints,
	}
}
