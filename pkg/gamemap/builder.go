// Package gamemap собирает статические карты и таблицы волн.
// Чистые данные: поведения здесь нет, только конструкторы domain-структур.
package gamemap

import "bastion-server/internal/domain"

// cellRef - координаты клетки при описании пути и декораций
type cellRef struct {
	X, Z int
}

// buildMap размечает сетку по списку опорных клеток пути.
// Сегменты пути должны быть строго горизонтальными или вертикальными.
func buildMap(index int, name string, width, height int, path []cellRef, decor map[cellRef]domain.Terrain) *domain.GameMap {
	m := &domain.GameMap{
		Index:  index,
		Name:   name,
		Width:  width,
		Height: height,
		Cells:  make([]domain.Cell, width*height),
	}

	for z := 0; z < height; z++ {
		for x := 0; x < width; x++ {
			m.Cells[z*width+x] = domain.Cell{X: x, Z: z, Terrain: domain.TerrainGround}
		}
	}

	// Декорации (вода, горы) - до пути, чтобы путь их перебил при пересечении
	for ref, terrain := range decor {
		if c := m.CellAt(ref.X, ref.Z); c != nil {
			c.Terrain = terrain
		}
	}

	// Разметка дороги по сегментам
	for i := 0; i < len(path)-1; i++ {
		from, to := path[i], path[i+1]
		dx, dz := sign(to.X-from.X), sign(to.Z-from.Z)
		x, z := from.X, from.Z
		for {
			if c := m.CellAt(x, z); c != nil {
				c.Terrain = domain.TerrainPath
			}
			if x == to.X && z == to.Z {
				break
			}
			x += dx
			z += dz
		}
	}

	// Спавн и база поверх дороги
	m.CellAt(path[0].X, path[0].Z).Terrain = domain.TerrainSpawn
	last := path[len(path)-1]
	m.CellAt(last.X, last.Z).Terrain = domain.TerrainBase

	// Вейпоинты - центры опорных клеток
	for _, ref := range path {
		m.Waypoints = append(m.Waypoints, domain.Vec3{
			X: float64(ref.X) + 0.5,
			Y: 0,
			Z: float64(ref.Z) + 0.5,
		})
	}

	return m
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
