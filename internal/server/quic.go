package server

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/quic-go/quic-go"

	"github.com/zeusync/geomath/internal/core/observability/log"
)

// QUICProtocol is the ALPN identifier spoken by the QUIC listener.
const QUICProtocol = "geomath-quic"

// quicStreamAborted is the application error code used to cancel the read side
// of a stream whose request exceeded max_body_bytes.
const quicStreamAborted quic.StreamErrorCode = 1

// quicTLSConfig loads the configured key pair, or generates a self-signed one
// for loopback use when none is configured.
func (s *Server) quicTLSConfig() (*tls.Config, error) {
	if s.config.TLSCertFile != "" {
		cert, err := tls.LoadX509KeyPair(s.config.TLSCertFile, s.config.TLSKeyFile)
		if err != nil {
			return nil, fmt.Errorf("load tls key pair: %w", err)
		}
		return &tls.Config{
			Certificates: []tls.Certificate{cert},
			NextProtos:   []string{QUICProtocol},
			MinVersion:   tls.VersionTLS13,
		}, nil
	}
	return GenerateSelfSignedTLS()
}

// GenerateSelfSignedTLS returns a server TLS config with a fresh certificate
// valid for localhost, 127.0.0.1 and ::1.
func GenerateSelfSignedTLS() (*tls.Config, error) {
	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, err
	}

	template := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject: pkix.Name{
			Organization: []string{"geomath"},
		},
		NotBefore:             time.Now(),
		NotAfter:              time.Now().Add(365 * 24 * time.Hour),
		KeyUsage:              x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		IPAddresses:           []net.IP{net.IPv4(127, 0, 0, 1), net.IPv6loopback},
		DNSNames:              []string{"localhost"},
	}

	certDER, err := x509.CreateCertificate(rand.Reader, &template, &template, &privateKey.PublicKey, privateKey)
	if err != nil {
		return nil, err
	}

	return &tls.Config{
		Certificates: []tls.Certificate{{
			Certificate: [][]byte{certDER},
			PrivateKey:  privateKey,
		}},
		NextProtos: []string{QUICProtocol},
		MinVersion: tls.VersionTLS13,
	}, nil
}

// startQUIC binds the QUIC listener and accepts connections in the background.
func (s *Server) startQUIC() error {
	tlsConfig, err := s.quicTLSConfig()
	if err != nil {
		return err
	}

	quicConfig := &quic.Config{
		MaxIdleTimeout:  30 * time.Second,
		KeepAlivePeriod: 15 * time.Second,
	}
	listener, err := quic.ListenAddr(s.config.QUICAddr, tlsConfig, quicConfig)
	if err != nil {
		return fmt.Errorf("listen quic: %w", err)
	}

	s.mu.Lock()
	s.quicListener = listener
	s.mu.Unlock()

	go s.acceptQUIC(listener)

	s.logger.Info("QUIC listening", log.String("addr", listener.Addr().String()))
	return nil
}

func (s *Server) acceptQUIC(listener *quic.Listener) {
	for {
		conn, err := listener.Accept(context.Background())
		if err != nil {
			if atomic.LoadInt32(&s.stopping) == 0 {
				s.logger.Error("QUIC accept failed", log.Error(err))
			}
			return
		}

		id := uuid.NewString()
		s.quicConns.Store(id, conn)
		if atomic.LoadInt32(&s.stopping) == 1 {
			s.quicConns.Delete(id)
			_ = conn.CloseWithError(0, "server shutting down")
			return
		}

		go s.serveQUICConn(id, conn)
	}
}

// serveQUICConn answers every stream the peer opens until the connection ends.
func (s *Server) serveQUICConn(id string, conn *quic.Conn) {
	logger := s.logger.With(
		log.String("session_id", id),
		log.String("remote_addr", conn.RemoteAddr().String()))
	logger.Info("QUIC connection accepted")

	defer func() {
		s.quicConns.Delete(id)
		logger.Info("QUIC connection closed")
	}()

	for {
		stream, err := conn.AcceptStream(conn.Context())
		if err != nil {
			return
		}
		go s.serveQUICStream(stream, logger)
	}
}

// serveQUICStream reads one Request up to the peer's FIN and writes one Response.
func (s *Server) serveQUICStream(stream *quic.Stream, logger log.Log) {
	defer func() { _ = stream.Close() }()

	if s.config.ReadTimeout > 0 {
		_ = stream.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
	}
	data, err := io.ReadAll(io.LimitReader(stream, s.config.MaxBodyBytes+1))
	if err != nil {
		logger.Warn("QUIC stream read failed", log.Error(err))
		stream.CancelRead(quicStreamAborted)
		return
	}

	var resp Response
	if int64(len(data)) > s.config.MaxBodyBytes {
		stream.CancelRead(quicStreamAborted)
		resp.Error = fmt.Sprintf("%v: request exceeds %d bytes", ErrInvalidArguments, s.config.MaxBodyBytes)
	} else {
		resp = s.service.ConvertFrame(data)
	}

	if s.config.WriteTimeout > 0 {
		_ = stream.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	}
	if err := json.NewEncoder(stream).Encode(resp); err != nil {
		logger.Warn("QUIC stream write failed", log.Error(err))
	}
}

// QUICRoundTrip sends req on a new stream of conn and reads the Response.
// The stream is half-closed after the request, which marks its end.
func QUICRoundTrip(ctx context.Context, conn *quic.Conn, req Request) (Response, error) {
	stream, err := conn.OpenStreamSync(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("open stream: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = stream.SetDeadline(deadline)
	}

	if err := json.NewEncoder(stream).Encode(req); err != nil {
		stream.CancelRead(quicStreamAborted)
		return Response{}, fmt.Errorf("write request: %w", err)
	}
	if err := stream.Close(); err != nil {
		return Response{}, fmt.Errorf("close stream: %w", err)
	}

	var resp Response
	if err := json.NewDecoder(stream).Decode(&resp); err != nil {
		return Response{}, fmt.Errorf("read response: %w", err)
	}
	return resp, nil
}
