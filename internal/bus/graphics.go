package bus

// Graphics is the bus's view of the PALRAM/VRAM/OAM-owning component
// (spec.md §4.2). The bus only forwards accesses to it — VRAM's bespoke
// 96 KiB/128 KiB mirroring and all rendering live entirely inside the
// implementation, outside this core's scope.
type Graphics interface {
	ReadPalette8(offset uint32) uint8
	ReadPalette16(offset uint32) uint16
	ReadPalette32(offset uint32) uint32
	WritePalette8(offset uint32, value uint8)
	WritePalette16(offset uint32, value uint16)
	WritePalette32(offset uint32, value uint32)

	ReadVRAM8(offset uint32) uint8
	ReadVRAM16(offset uint32) uint16
	ReadVRAM32(offset uint32) uint32
	WriteVRAM8(offset uint32, value uint8)
	WriteVRAM16(offset uint32, value uint16)
	WriteVRAM32(offset uint32, value uint32)

	ReadOAM8(offset uint32) uint8
	ReadOAM16(offset uint32) uint16
	ReadOAM32(offset uint32) uint32
	WriteOAM8(offset uint32, value uint8)
	WriteOAM16(offset uint32, value uint16)
	WriteOAM32(offset uint32, value uint32)
}
