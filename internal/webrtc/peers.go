// Package webrtc builds peer connections whose data channels carry broadcasts.
package webrtc

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/pion/interceptor"
	"github.com/pion/webrtc/v3"
)

// PeerFactory creates peer connections sharing one API and ICE configuration.
type PeerFactory struct {
	mu     sync.Mutex
	api    *webrtc.API
	config webrtc.Configuration
	open   int
}

// NewPeerFactory initializes the pion API with default codecs and
// interceptors. Empty entries in stunURLs are skipped.
func NewPeerFactory(stunURLs []string) (*PeerFactory, error) {
	media := &webrtc.MediaEngine{}
	if err := media.RegisterDefaultCodecs(); err != nil {
		return nil, fmt.Errorf("register codecs: %w", err)
	}

	interceptors := &interceptor.Registry{}
	if err := webrtc.RegisterDefaultInterceptors(media, interceptors); err != nil {
		return nil, fmt.Errorf("register interceptors: %w", err)
	}

	api := webrtc.NewAPI(
		webrtc.WithMediaEngine(media),
		webrtc.WithInterceptorRegistry(interceptors),
	)
	return &PeerFactory{api: api, config: iceConfig(stunURLs)}, nil
}

// iceConfig turns STUN urls into an ICE configuration.
func iceConfig(stunURLs []string) webrtc.Configuration {
	var urls []string
	for _, u := range stunURLs {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	if len(urls) == 0 {
		return webrtc.Configuration{}
	}
	return webrtc.Configuration{ICEServers: []webrtc.ICEServer{{URLs: urls}}}
}

// NewPeer creates a peer connection; it is counted until it closes.
func (f *PeerFactory) NewPeer() (*webrtc.PeerConnection, error) {
	peer, err := f.api.NewPeerConnection(f.config)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.open++
	f.mu.Unlock()

	var once sync.Once
	peer.OnConnectionStateChange(func(state webrtc.PeerConnectionState) {
		if state == webrtc.PeerConnectionStateClosed {
			once.Do(func() {
				f.mu.Lock()
				f.open--
				f.mu.Unlock()
			})
		}
	})
	return peer, nil
}

// Open returns the number of peers not yet closed.
func (f *PeerFactory) Open() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

// DataChannelListener sends broadcasts as text messages on a data channel.
type DataChannelListener struct {
	dc *webrtc.DataChannel
}

// NewDataChannelListener wraps an open data channel.
func NewDataChannelListener(dc *webrtc.DataChannel) *DataChannelListener {
	return &DataChannelListener{dc: dc}
}

// Send writes data as a text message.
func (l *DataChannelListener) Send(data []byte) error {
	if l == nil || l.dc == nil {
		return errors.New("data channel is nil")
	}
	if l.dc.ReadyState() != webrtc.DataChannelStateOpen {
		return fmt.Errorf("data channel %q is %s", l.dc.Label(), l.dc.ReadyState())
	}
	return l.dc.SendText(string(data))
}

// Close closes the data channel.
func (l *DataChannelListener) Close() error {
	return l.dc.Close()
}

// Label returns the data channel label.
func (l *DataChannelListener) Label() string {
	return l.dc.Label()
}
