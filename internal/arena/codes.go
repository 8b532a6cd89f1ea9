package arena

import "math/rand"

// Формат кода комнаты: префикс режима + 4 символа.
// Из алфавита убраны похожие символы (0/O, 1/I/L).
const (
	codePrefix   = "TD"
	codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	codeLength   = 4
)

// generateCode собирает случайный код комнаты
func generateCode(rng *rand.Rand) string {
	buf := make([]byte, codeLength)
	for i := range buf {
		buf[i] = codeAlphabet[rng.Intn(len(codeAlphabet))]
	}
	return codePrefix + string(buf)
}

// allocateCode подбирает код, не занятый живой комнатой.
// Вызывается строго под мьютексом сервиса - иначе возможна коллизия
// между двумя одновременными CreateRoom.
func (s *Service) allocateCode() string {
	for {
		code := generateCode(s.rng)
		if _, taken := s.rooms[code]; !taken {
			return code
		}
	}
}
