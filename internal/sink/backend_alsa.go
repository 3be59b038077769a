//go:build linux && cgo

package sink

/*
#cgo LDFLAGS: -lasound
#include <alsa/asoundlib.h>
#include <stdlib.h>

static snd_pcm_t *openPCM(const char *device, int *err) {
    snd_pcm_t *handle;
    *err = snd_pcm_open(&handle, device, SND_PCM_STREAM_PLAYBACK, 0);
    return handle;
}

static int setupPCM(snd_pcm_t *handle, unsigned int rate, snd_pcm_uframes_t period) {
    snd_pcm_hw_params_t *params;
    int err;

    snd_pcm_hw_params_alloca(&params);
    err = snd_pcm_hw_params_any(handle, params);
    if (err < 0) return err;

    err = snd_pcm_hw_params_set_access(handle, params, SND_PCM_ACCESS_RW_INTERLEAVED);
    if (err < 0) return err;

    err = snd_pcm_hw_params_set_format(handle, params, SND_PCM_FORMAT_S16_LE);
    if (err < 0) return err;

    err = snd_pcm_hw_params_set_channels(handle, params, 2);
    if (err < 0) return err;

    err = snd_pcm_hw_params_set_rate(handle, params, rate, 0);
    if (err < 0) return err;

    err = snd_pcm_hw_params_set_period_size_near(handle, params, &period, NULL);
    if (err < 0) return err;

    err = snd_pcm_hw_params(handle, params);
    if (err < 0) return err;

    return snd_pcm_prepare(handle);
}

static snd_pcm_sframes_t writePCM(snd_pcm_t *handle, short *buffer, snd_pcm_uframes_t frames) {
    return snd_pcm_writei(handle, buffer, frames);
}

static void closePCM(snd_pcm_t *handle) {
    if (handle != NULL) {
        snd_pcm_drain(handle);
        snd_pcm_close(handle);
    }
}
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// ALSASink writes stereo S16_LE frames directly to an ALSA PCM device via
// cgo: same open/setup/write/EPIPE-recover/drain-on-close shape as a
// float-format ALSA backend, retargeted to S16_LE stereo to match the
// Driver's int16 conversion.
type ALSASink struct {
	handle *C.snd_pcm_t
}

// NewALSASink constructs an unopened ALSA sink.
func NewALSASink() *ALSASink { return &ALSASink{} }

func (a *ALSASink) Open(device string, sampleRate, blockSize int) error {
	if device == "" {
		device = "default"
	}
	cDevice := C.CString(device)
	defer C.free(unsafe.Pointer(cDevice))

	var cErr C.int
	handle := C.openPCM(cDevice, &cErr)
	if cErr < 0 {
		return fmt.Errorf("alsa: open %q: %s", device, C.GoString(C.snd_strerror(cErr)))
	}

	if err := C.setupPCM(handle, C.uint(sampleRate), C.snd_pcm_uframes_t(blockSize)); err < 0 {
		C.closePCM(handle)
		return fmt.Errorf("alsa: hw_params: %s", C.GoString(C.snd_strerror(err)))
	}

	a.handle = handle
	return nil
}

func (a *ALSASink) Write(frames []int16) (int, error) {
	if a.handle == nil {
		return 0, fmt.Errorf("alsa: sink not open")
	}
	if len(frames) == 0 {
		return 0, nil
	}

	n := C.writePCM(a.handle, (*C.short)(unsafe.Pointer(&frames[0])), C.snd_pcm_uframes_t(len(frames)/2))
	if n < 0 {
		return 0, fmt.Errorf("alsa: writei: %s", C.GoString(C.snd_strerror(C.int(n))))
	}
	return int(n), nil
}

// Recover handles the classic ALSA underrun (EPIPE): snd_pcm_prepare puts
// the stream back into a writable state. It re-prepares whatever the
// cause was; only a failing snd_pcm_prepare is reported up, so the
// driver drops the block.
func (a *ALSASink) Recover(cause error) error {
	if a.handle == nil {
		return fmt.Errorf("alsa: sink not open")
	}
	if err := C.snd_pcm_prepare(a.handle); err < 0 {
		return fmt.Errorf("alsa: prepare after %v: %s", cause, C.GoString(C.snd_strerror(err)))
	}
	return nil
}

func (a *ALSASink) Close() error {
	if a.handle != nil {
		C.closePCM(a.handle)
		a.handle = nil
	}
	return nil
}
