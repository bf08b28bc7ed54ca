package container

import (
	"hash/adler32"
	"hash/crc32"
)

// CRC32 is the chunk checksum: IEEE polynomial, reflected, all-ones init,
// inverted result.
func CRC32(b []byte) uint32 {
	return crc32.ChecksumIEEE(b)
}

// Adler32 is the zlib stream trailer checksum (mod 65521, a seeded at 1).
func Adler32(b []byte) uint32 {
	return adler32.Checksum(b)
}

func chunkCRC(name string, data []byte) uint32 {
	crc := crc32.NewIEEE()
	crc.Write([]byte(name))
	crc.Write(data)
	return crc.Sum32()
}
