// Package services contains application services for the StudentHub client.
// This file defines the session service: register, online/offline login,
// logout and the owner identity every local record is stamped with.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/studenthub/internal/client/client"
	"github.com/dmitrijs2005/studenthub/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/studenthub/internal/common"
	"github.com/dmitrijs2005/studenthub/internal/cryptox"
	"github.com/dmitrijs2005/studenthub/internal/dbx"
)

// ErrNoOfflineData is returned by OfflineLogin when this device has never
// completed an online login for the user.
var ErrNoOfflineData = errors.New("local login data unavailable")

// AuthService holds the session of the current user.
//
// OnlineLogin authenticates against the server and caches what OfflineLogin
// needs (username, salt, verifier, owner id). Either login establishes the
// owner returned by OwnerID; until then OwnerID fails with
// common.ErrNotAuthenticated.
type AuthService struct {
	client client.Client
	db     *sql.DB

	mu       sync.RWMutex
	ownerID  string
	username string
}

// NewAuthService constructs an AuthService bound to the given API client and DB.
func NewAuthService(client client.Client, db *sql.DB) *AuthService {
	return &AuthService{client: client, db: db}
}

func (a *AuthService) getMetadataRepo() metadata.Repository {
	return metadata.NewSQLiteRepository(a.db)
}

func (a *AuthService) establish(ownerID, username string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ownerID = ownerID
	a.username = username
}

// OwnerID returns the id of the logged-in user.
func (a *AuthService) OwnerID(ctx context.Context) (string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.ownerID == "" {
		return "", common.ErrNotAuthenticated
	}
	return a.ownerID, nil
}

// Username returns the logged-in user name or "".
func (a *AuthService) Username() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.username
}

// OfflineLogin verifies the password against the locally cached verifier.
func (a *AuthService) OfflineLogin(ctx context.Context, username string, password []byte) error {
	metadataRepo := a.getMetadataRepo()

	saved, err := metadataRepo.GetMany(ctx, common.MetaUsername, common.MetaSalt, common.MetaVerifier, common.MetaOwnerID)
	if err != nil {
		return fmt.Errorf("read local login data: %w", err)
	}

	savedSalt := saved[common.MetaSalt]
	savedVerifier := saved[common.MetaVerifier]
	savedOwner := saved[common.MetaOwnerID]
	if savedSalt == nil || savedVerifier == nil || len(savedOwner) == 0 {
		return ErrNoOfflineData
	}
	if string(saved[common.MetaUsername]) != username {
		return client.ErrUnauthorized
	}

	if !cryptox.CheckPassword(password, savedSalt, savedVerifier) {
		return client.ErrUnauthorized
	}

	a.establish(string(savedOwner), username)
	return nil
}

// OnlineLogin authenticates against the server and saves offline data.
func (a *AuthService) OnlineLogin(ctx context.Context, userName string, password []byte) error {
	salt, err := a.client.GetSalt(ctx, userName)
	if err != nil {
		return fmt.Errorf("get salt error: %w", err)
	}

	masterKey := cryptox.DeriveMasterKey(password, salt)
	defer common.WipeByteArray(masterKey)
	verifier := cryptox.MakeVerifier(masterKey)

	ownerID, err := a.client.Login(ctx, userName, verifier)
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}
	if ownerID == "" {
		return fmt.Errorf("login error: server returned no user id")
	}

	if err := a.saveOfflineData(ctx, userName, salt, verifier, ownerID); err != nil {
		return fmt.Errorf("offline data saving error: %w", err)
	}

	a.establish(ownerID, userName)
	return nil
}

// Login tries the server first and falls back to the cached verifier when
// the server cannot be reached. online reports which path succeeded.
func (a *AuthService) Login(ctx context.Context, userName string, password []byte) (online bool, err error) {
	err = a.OnlineLogin(ctx, userName, password)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, client.ErrUnavailable) {
		return false, err
	}
	if err := a.OfflineLogin(ctx, userName, password); err != nil {
		return false, err
	}
	return false, nil
}

// saveOfflineData persists the login cache in a single transaction.
func (a *AuthService) saveOfflineData(ctx context.Context, userName string, salt, verifier []byte, ownerID string) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		metadataRepo := metadata.NewSQLiteRepository(tx)

		if prev, err := metadataRepo.Get(ctx, common.MetaOwnerID); err != nil {
			return err
		} else if prev != nil && string(prev) != ownerID {
			// another account used this device; its sync marker is meaningless now
			if _, err := metadataRepo.Delete(ctx, common.MetaLastSyncedAt); err != nil {
				return err
			}
		}

		return metadataRepo.SetMany(ctx, map[string][]byte{
			common.MetaUsername: []byte(userName),
			common.MetaSalt:     salt,
			common.MetaVerifier: verifier,
			common.MetaOwnerID:  []byte(ownerID),
		})
	})
}

// Register creates a new account on the server. It generates a random salt,
// derives a master key from the provided password, computes a verifier,
// and sends salt/verifier to the server.
func (a *AuthService) Register(ctx context.Context, username string, password []byte) error {
	salt := common.GenerateRandByteArray(cryptox.SaltSize)
	key := cryptox.DeriveMasterKey(password, salt)
	defer common.WipeByteArray(key)
	verifier := cryptox.MakeVerifier(key)

	if err := a.client.Register(ctx, username, salt, verifier); err != nil {
		return err
	}
	return nil
}

// Logout ends the session and wipes the cached login data. Local records
// are kept; they stay scoped to their owner.
func (a *AuthService) Logout(ctx context.Context) error {
	a.establish("", "")
	a.client.Logout()

	_, err := a.getMetadataRepo().Delete(ctx,
		common.MetaUsername, common.MetaSalt, common.MetaVerifier, common.MetaOwnerID, common.MetaLastSyncedAt)
	if err != nil {
		return fmt.Errorf("clear login data: %w", err)
	}
	return nil
}

// Ping proxies a liveness check to the underlying client.
func (a *AuthService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *AuthService) Close(ctx context.Context) error {
	return a.client.Close()
}
