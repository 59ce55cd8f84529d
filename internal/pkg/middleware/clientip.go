package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
)

// Headers de encaminhamento aceitos quando a conexão vem de um proxy confiável.
const (
	ForwardedForHeader = "X-Forwarded-For"
	RealIPHeader       = "X-Real-IP"
)

// TrustedProxies lista as redes autorizadas a informar o IP do cliente original
// (e.g., o frontend cmd/web ou um balanceador).
type TrustedProxies []*net.IPNet

// ParseTrustedProxies aceita IPs ("10.0.0.5") e CIDRs ("10.0.0.0/8").
func ParseTrustedProxies(entries []string) (TrustedProxies, error) {
	var proxies TrustedProxies
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		if !strings.Contains(entry, "/") {
			ip := net.ParseIP(entry)
			if ip == nil {
				return nil, fmt.Errorf("proxy confiável inválido: %q", entry)
			}
			bits := 8 * net.IPv6len
			if ip.To4() != nil {
				ip, bits = ip.To4(), 8*net.IPv4len
			}
			proxies = append(proxies, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}

		_, network, err := net.ParseCIDR(entry)
		if err != nil {
			return nil, fmt.Errorf("proxy confiável inválido: %q: %w", entry, err)
		}
		proxies = append(proxies, network)
	}
	return proxies, nil
}

func (t TrustedProxies) contains(ip net.IP) bool {
	if ip == nil {
		return false
	}
	for _, network := range t {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// ClientIP devolve o IP do cliente. Os headers de encaminhamento só valem quando a
// conexão vem de um proxy confiável; o X-Forwarded-For é lido da direita para a
// esquerda e o primeiro endereço fora da lista é o cliente.
func (t TrustedProxies) ClientIP(r *http.Request) string {
	remote, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remote = r.RemoteAddr
	}
	if !t.contains(net.ParseIP(remote)) {
		return remote
	}

	if forwarded := r.Header.Get(ForwardedForHeader); forwarded != "" {
		hops := strings.Split(forwarded, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			ip := net.ParseIP(strings.TrimSpace(hops[i]))
			if ip == nil {
				break
			}
			if !t.contains(ip) {
				return ip.String()
			}
		}
	}

	if ip := net.ParseIP(strings.TrimSpace(r.Header.Get(RealIPHeader))); ip != nil {
		return ip.String()
	}
	return remote
}
