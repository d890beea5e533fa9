package mock

import (
	"errors"
	"net"
	"net/netip"
	"strconv"

	"github.com/google/uuid"
)

// Address é o endereço IP de escuta do servidor.
type Address struct {
	addr netip.Addr
}

// ParseAddress valida um endereço IPv4/IPv6 textual.
func ParseAddress(s string) (Address, error) {
	a, err := netip.ParseAddr(s)
	if err != nil {
		return Address{}, &AddressError{Value: s, Err: err}
	}
	return Address{addr: a}, nil
}

// MustParseAddress é similar ao ParseAddress, mas panic em caso de erro.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Address) IsValid() bool  { return a.addr.IsValid() }
func (a Address) String() string { return a.addr.String() }

// MarshalText implementa encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	if !a.addr.IsValid() {
		return nil, &AddressError{Value: "", Err: errors.New("endereço não definido")}
	}
	return []byte(a.addr.String()), nil
}

// UnmarshalText retorna *AddressError para qualquer texto que não seja um IP.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Server descreve o endpoint de escuta e os headers de escopo de servidor.
type Server struct {
	ID          uuid.UUID `json:"id" yaml:"id" validate:"required"`
	RouterID    uuid.UUID `json:"routerId" yaml:"routerId" validate:"required"`
	Address     Address   `json:"address" yaml:"address"`
	Port        uint16    `json:"port" yaml:"port"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	Headers     []Header  `json:"headers" yaml:"headers" validate:"dive"`
}

// NewServer cria um servidor ligado ao router informado.
func NewServer(routerID uuid.UUID, address string, port uint16) (*Server, error) {
	addr, err := ParseAddress(address)
	if err != nil {
		return nil, err
	}
	return &Server{
		ID:       uuid.New(),
		RouterID: routerID,
		Address:  addr,
		Port:     port,
		Headers:  []Header{},
	}, nil
}

// AddHeader anexa um header no escopo do servidor.
func (s *Server) AddHeader(h Header) *Server {
	s.Headers = append(s.Headers, h)
	return s
}

// ListenAddr retorna "endereço:porta" pronto para net.Listen (IPv6 entre colchetes).
func (s *Server) ListenAddr() string {
	return net.JoinHostPort(s.Address.String(), strconv.Itoa(int(s.Port)))
}
