package gamemap

import "bastion-server/internal/domain"

// MapCount - количество встроенных карт
const MapCount = 2

// ByIndex возвращает карту по индексу (вне диапазона - первая карта).
// Каждый вызов собирает свежий экземпляр: владелец может спокойно
// хранить в клетках изменяемое состояние.
func ByIndex(index int) *domain.GameMap {
	switch index {
	case 1:
		return crossroads()
	default:
		return serpentine()
	}
}

// serpentine - длинная змейка через все поле
func serpentine() *domain.GameMap {
	path := []cellRef{
		{0, 7}, {5, 7}, {5, 2}, {12, 2}, {12, 11}, {17, 11}, {17, 5}, {19, 5},
	}
	decor := map[cellRef]domain.Terrain{
		{2, 2}:   domain.TerrainWater,
		{3, 2}:   domain.TerrainWater,
		{3, 3}:   domain.TerrainWater,
		{15, 13}: domain.TerrainMountain,
		{16, 13}: domain.TerrainMountain,
		{8, 8}:   domain.TerrainMountain,
	}
	return buildMap(0, "Серпантин", 20, 15, path, decor)
}

// crossroads - короткий прямой участок с двумя резкими поворотами
func crossroads() *domain.GameMap {
	path := []cellRef{
		{9, 0}, {9, 6}, {3, 6}, {3, 12}, {15, 12}, {15, 8}, {19, 8},
	}
	decor := map[cellRef]domain.Terrain{
		{0, 0}:   domain.TerrainWater,
		{1, 0}:   domain.TerrainWater,
		{0, 1}:   domain.TerrainWater,
		{18, 14}: domain.TerrainMountain,
		{6, 2}:   domain.TerrainMountain,
		{12, 3}:  domain.TerrainMountain,
	}
	return buildMap(1, "Перекресток", 20, 15, path, decor)
}
