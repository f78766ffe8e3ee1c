package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	ticketExpiry     = 2 * time.Hour
	ticketSecretKey  = "ticket_secret"
	ticketSecretSize = 32
)

var errInvalidTicket = errors.New("invalid match ticket")

// Tickets issues and checks signed match tickets. A ticket lets a reloaded
// browser tab reattach to the match it started.
type Tickets struct {
	secret []byte
}

// NewTickets creates a ticket signer; db may be nil for a throwaway secret
func NewTickets(db *DB) *Tickets {
	return &Tickets{secret: loadOrCreateSecret(db)}
}

// loadOrCreateSecret loads the signing secret from the database, or generates
// and persists a new one if none exists.
func loadOrCreateSecret(db *DB) []byte {
	if db != nil {
		if h := db.GetSetting(ticketSecretKey); h != "" {
			if b, err := hex.DecodeString(h); err == nil && len(b) == ticketSecretSize {
				return b
			}
		}
	}
	secret := make([]byte, ticketSecretSize)
	if _, err := rand.Read(secret); err != nil {
		panic("failed to generate ticket secret: " + err.Error())
	}
	if db != nil {
		if err := db.SetSetting(ticketSecretKey, hex.EncodeToString(secret)); err != nil {
			log.Printf("warning: could not persist ticket secret: %v", err)
		}
	}
	return secret
}

// Issue signs a ticket for the given match and player name
func (tk *Tickets) Issue(matchID, name string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"mid": matchID,
		"usr": name,
		"exp": now.Add(ticketExpiry).Unix(),
		"iat": now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tk.secret)
}

// Validate checks a ticket and returns (matchID, name)
func (tk *Tickets) Validate(ticket string) (string, string, error) {
	token, err := jwt.Parse(ticket, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return tk.secret, nil
	})
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", errInvalidTicket, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", errInvalidTicket
	}
	mid, ok := claims["mid"].(string)
	if !ok || mid == "" {
		return "", "", errInvalidTicket
	}
	name, _ := claims["usr"].(string)
	return mid, name, nil
}
