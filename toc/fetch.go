package toc

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/mikehamer/crazycodec/cache"
	"github.com/mikehamer/crazycodec/crazyflie"
	"github.com/mikehamer/crazycodec/crtp"
	"github.com/mikehamer/crazycodec/crtpdevice"
)

const fetchAttempts = 5

// Fetcher downloads a TOC over a device, reusing the cache when the vehicle
// announces a CRC seen before.
type Fetcher struct {
	Device  crtpdevice.CrtpDevice
	Timeout time.Duration // per request
	Logger  zerolog.Logger
}

// Fetch fills t. Frames unrelated to the table are skipped.
func (f *Fetcher) Fetch(ctx context.Context, t *Table) error {
	infoRequest, infoKind := f.infoRequest(t)

	var info crazyflie.Message
	if err := f.request(ctx, infoRequest, func(m crazyflie.Message) bool {
		info = m
		return m.Kind == infoKind
	}); err != nil {
		return err
	}

	switch v := info.Value.(type) {
	case crazyflie.ParamTocInfoResponse:
		t.SetInfo(v.ParamCount, v.CRC)
	case crazyflie.LogTocInfoResponse:
		t.SetInfo(v.VarCount, v.CRC)
	}

	if err := t.Load(); err == nil {
		f.Logger.Info().Str("kind", t.Kind()).Uint16("count", t.Count()).Str("crc", crcString(t.CRC())).Msg("toc loaded from cache")
		return nil
	} else if err != cache.ErrorMiss && err != cache.ErrorNotInitialised {
		f.Logger.Warn().Err(err).Msg("ignoring toc cache entry")
	}

	for _, id := range t.Missing() {
		request, itemKind := f.itemRequest(t, id)
		err := f.request(ctx, request, func(m crazyflie.Message) bool {
			if m.Kind != itemKind {
				return false
			}
			var added uint16
			switch v := m.Value.(type) {
			case crazyflie.ParamTocItemResponse:
				added = v.ParamID
				if err := t.AddParam(v); err != nil {
					f.Logger.Warn().Err(err).Uint16("id", v.ParamID).Msg("dropping toc item")
				}
			case crazyflie.LogTocItemResponse:
				added = v.VarID
				if err := t.AddLog(v); err != nil {
					f.Logger.Warn().Err(err).Uint16("id", v.VarID).Msg("dropping toc item")
				}
			}
			return added == id
		})
		if err != nil {
			return err
		}
	}

	f.Logger.Info().Str("kind", t.Kind()).Uint16("count", t.Count()).Str("crc", crcString(t.CRC())).Msg("toc fetched")

	if err := t.Save(); err != nil && err != cache.ErrorNotInitialised {
		f.Logger.Warn().Err(err).Msg("error while caching toc")
	}
	return nil
}

func (f *Fetcher) infoRequest(t *Table) (crtp.Request, string) {
	if t.Kind() == cache.KindLog {
		return &crazyflie.LogRequestTocInfo{}, crazyflie.KindLogTocInfo
	}
	return &crazyflie.ParamRequestTocInfo{}, crazyflie.KindParamTocInfo
}

func (f *Fetcher) itemRequest(t *Table, id uint16) (crtp.Request, string) {
	if t.Kind() == cache.KindLog {
		return &crazyflie.LogRequestTocItem{ID: id}, crazyflie.KindLogTocItem
	}
	return &crazyflie.ParamRequestTocItem{ID: id}, crazyflie.KindParamTocItem
}

// request sends r and feeds decoded frames to match until it accepts one,
// resending up to fetchAttempts times.
func (f *Fetcher) request(ctx context.Context, r crtp.Request, match func(crazyflie.Message) bool) error {
	for attempt := 0; attempt < fetchAttempts; attempt++ {
		if err := f.Device.PacketSend(r); err != nil {
			return err
		}

		deadline := time.Now().Add(f.Timeout)
		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			remaining := time.Until(deadline)
			if remaining <= 0 {
				break
			}

			packet, err := f.Device.PacketReceive(remaining)
			if err == crtpdevice.ErrorNoPacket {
				break
			}
			if err != nil {
				return err
			}

			m, err := crazyflie.Decode(packet)
			if err != nil {
				f.Logger.Debug().Err(err).Hex("packet", packet).Msg("dropping malformed packet")
				continue
			}
			if match(m) {
				return nil
			}
		}
		f.Logger.Debug().Int("attempt", attempt+1).Msg("toc request timed out")
	}
	return ErrorNoResponse
}
