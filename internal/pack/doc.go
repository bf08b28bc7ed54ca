// Package pack turns files and directories into PNK artifacts and back.
//
// Payload types:
// - TypeRaw: opaque bytes, extracted as data.bin
// - TypeFile: u16 LE name length | UTF-8 name | content
// - TypeArchive: zip archive of a directory tree
//
// Framing is delegated to protocol/frame and the image wrapper to
// protocol/container.
package pack
