package agentx

import "log/slog"

// DefaultMaxPayloadLength is the payload cap applied when no explicit
// limit is configured.
const DefaultMaxPayloadLength = 1 << 20

// CodecOptions contains configuration options for the Decoder and Encoder.
type CodecOptions struct {
	// MaxPayloadLength caps the payload length a decoder accepts from a
	// header before reading the payload. Zero disables the cap, which
	// lets a hostile header demand a 4 GiB allocation; leave the default
	// in place when decoding untrusted streams.
	MaxPayloadLength uint32
	// NetworkByteOrder makes the encoder stamp FlagNetworkByteOrder on
	// every PDU it encodes, so all multi-byte fields go out big-endian.
	NetworkByteOrder bool
	// Logger receives codec diagnostics.
	Logger *slog.Logger
}

// NewCodecOptions creates codec options with defaults applied.
func NewCodecOptions() *CodecOptions {
	return &CodecOptions{
		MaxPayloadLength: DefaultMaxPayloadLength,
	}
}

// Option configures the codec.
type Option func(*CodecOptions)

// WithMaxPayloadLength sets the largest payload a decoder will accept.
func WithMaxPayloadLength(n uint32) Option {
	return func(o *CodecOptions) {
		o.MaxPayloadLength = n
	}
}

// WithNetworkByteOrder makes the encoder emit big-endian packets.
func WithNetworkByteOrder() Option {
	return func(o *CodecOptions) {
		o.NetworkByteOrder = true
	}
}

// WithLogger sets the logger used for codec diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *CodecOptions) {
		o.Logger = logger
	}
}
