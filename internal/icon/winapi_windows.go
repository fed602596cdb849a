package icon

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	// extractIconsFailed is returned by PrivateExtractIcons when the file cannot be read
	extractIconsFailed = 0xFFFFFFFF

	// biRGB is the uncompressed DIB format
	biRGB = 0

	// dibRGBColors selects literal RGB values in GetDIBits
	dibRGBColors = 0
)

var (
	user32  = windows.NewLazySystemDLL("user32.dll")
	gdi32   = windows.NewLazySystemDLL("gdi32.dll")
	shell32 = windows.NewLazySystemDLL("shell32.dll")

	procPrivateExtractIconsW   = user32.NewProc("PrivateExtractIconsW")
	procGetIconInfo            = user32.NewProc("GetIconInfo")
	procDestroyIcon            = user32.NewProc("DestroyIcon")
	procGetDC                  = user32.NewProc("GetDC")
	procReleaseDC              = user32.NewProc("ReleaseDC")
	procGetObjectW             = gdi32.NewProc("GetObjectW")
	procGetDIBits              = gdi32.NewProc("GetDIBits")
	procDeleteObject           = gdi32.NewProc("DeleteObject")
	procExtractAssociatedIconW = shell32.NewProc("ExtractAssociatedIconW")
)

// iconInfo mirrors ICONINFO
type iconInfo struct {
	FIcon    int32
	XHotspot uint32
	YHotspot uint32
	HbmMask  windows.Handle
	HbmColor windows.Handle
}

// bitmap mirrors BITMAP
type bitmap struct {
	Type       int32
	Width      int32
	Height     int32
	WidthBytes int32
	Planes     uint16
	BitsPixel  uint16
	Bits       uintptr
}

// bitmapInfoHeader mirrors BITMAPINFOHEADER
type bitmapInfoHeader struct {
	Size          uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

// bitmapInfo mirrors BITMAPINFO with room for one palette entry
type bitmapInfo struct {
	Header bitmapInfoHeader
	Colors [1]uint32
}

// privateExtractIcons wraps PrivateExtractIconsW. With a nil icons slice it
// returns the number of icons in the file.
func privateExtractIcons(path *uint16, size int32, icons []windows.Handle, ids []uint32) uint32 {
	var iconsPtr, idsPtr uintptr
	count := uintptr(0)
	if len(icons) > 0 {
		iconsPtr = uintptr(unsafe.Pointer(&icons[0]))
		idsPtr = uintptr(unsafe.Pointer(&ids[0]))
		count = uintptr(len(icons))
	}
	r0, _, _ := syscall.SyscallN(
		procPrivateExtractIconsW.Addr(),
		uintptr(unsafe.Pointer(path)),
		0,
		uintptr(size),
		uintptr(size),
		iconsPtr,
		idsPtr,
		count,
		0,
	)
	return uint32(r0)
}

// getIconInfo wraps GetIconInfo. The caller owns both returned bitmaps.
func getIconInfo(hIcon windows.Handle) (iconInfo, error) {
	var info iconInfo
	r0, _, e1 := syscall.SyscallN(
		procGetIconInfo.Addr(),
		uintptr(hIcon),
		uintptr(unsafe.Pointer(&info)),
	)
	if r0 == 0 {
		return info, e1
	}
	return info, nil
}

// destroyIcon releases an icon handle
func destroyIcon(hIcon windows.Handle) {
	_, _, _ = syscall.SyscallN(procDestroyIcon.Addr(), uintptr(hIcon))
}

// deleteObject releases a GDI object
func deleteObject(obj windows.Handle) {
	if obj != 0 {
		_, _, _ = syscall.SyscallN(procDeleteObject.Addr(), uintptr(obj))
	}
}

// getBitmap reads the BITMAP description of a bitmap handle
func getBitmap(hbm windows.Handle) (bitmap, error) {
	var bm bitmap
	r0, _, e1 := syscall.SyscallN(
		procGetObjectW.Addr(),
		uintptr(hbm),
		unsafe.Sizeof(bm),
		uintptr(unsafe.Pointer(&bm)),
	)
	if r0 == 0 {
		return bm, e1
	}
	return bm, nil
}

// getDIBits copies a bitmap as top-down 32-bit BGRA rows into buf
func getDIBits(hbm windows.Handle, width, height int32, buf []byte) error {
	hdc, _, e1 := syscall.SyscallN(procGetDC.Addr(), 0)
	if hdc == 0 {
		return e1
	}
	defer func() {
		_, _, _ = syscall.SyscallN(procReleaseDC.Addr(), 0, hdc)
	}()

	bi := bitmapInfo{
		Header: bitmapInfoHeader{
			Width:       width,
			Height:      -height, // top-down
			Planes:      1,
			BitCount:    32,
			Compression: biRGB,
		},
	}
	bi.Header.Size = uint32(unsafe.Sizeof(bi.Header))

	r0, _, e1 := syscall.SyscallN(
		procGetDIBits.Addr(),
		hdc,
		uintptr(hbm),
		0,
		uintptr(height),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(unsafe.Pointer(&bi)),
		dibRGBColors,
	)
	if r0 == 0 {
		return e1
	}
	return nil
}

// extractAssociatedIcon wraps ExtractAssociatedIconW. The path buffer must be
// MAX_PATH long because the call may write the icon's source path into it.
func extractAssociatedIcon(path string) (windows.Handle, error) {
	utf16, err := windows.UTF16FromString(path)
	if err != nil {
		return 0, err
	}
	buf := make([]uint16, windows.MAX_PATH)
	if len(utf16) > len(buf) {
		buf = make([]uint16, len(utf16))
	}
	copy(buf, utf16)

	var index uint16
	r0, _, e1 := syscall.SyscallN(
		procExtractAssociatedIconW.Addr(),
		0,
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(unsafe.Pointer(&index)),
	)
	if r0 == 0 {
		return 0, e1
	}
	return windows.Handle(r0), nil
}
