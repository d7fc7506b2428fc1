package handler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gridhaven/server/internal/net"
	"github.com/gridhaven/server/internal/net/packet"
	"github.com/gridhaven/server/internal/world"
	"go.uber.org/zap"
)

const (
	loginOK          byte = 0x00
	loginWrongPass   byte = 0x01
	loginNoAccount   byte = 0x02
	loginBanned      byte = 0x03
	loginUnavailable byte = 0x04
)

// HandleLogin processes the login message (opcode 12).
// Format: [opcode][version][account\0][password\0]
func HandleLogin(sess *net.Session, r *packet.Reader, deps *Deps) {
	// Running without a database means no account store; reject cleanly
	// instead of letting the repo call blow up.
	if deps.AccountRepo == nil {
		deps.Log.Warn("login rejected: no account store configured",
			zap.Uint64("session", sess.ID))
		sendLoginResult(sess, loginUnavailable, 0)
		return
	}

	accountName := strings.ToLower(r.ReadS())
	password := r.ReadS()

	if accountName == "" {
		sendLoginResult(sess, loginNoAccount, 0)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	account, err := deps.AccountRepo.Load(ctx, accountName)
	if err != nil {
		deps.Log.Error("account load failed", zap.Error(err))
		sendLoginResult(sess, loginWrongPass, 0)
		return
	}

	if account == nil {
		if !deps.Config.Economy.AutoCreateAccounts {
			sendLoginResult(sess, loginNoAccount, 0)
			return
		}
		account, err = deps.AccountRepo.Create(ctx, accountName, password)
		if err != nil {
			deps.Log.Error("account create failed", zap.Error(err))
			sendLoginResult(sess, loginWrongPass, 0)
			return
		}
		deps.Log.Info(fmt.Sprintf("auto-created account  account=%s  overseer=%d",
			accountName, account.OverseerID))
	} else if !deps.AccountRepo.ValidatePassword(account.PasswordHash, password) {
		sendLoginResult(sess, loginWrongPass, 0)
		return
	}

	if account.Banned {
		deps.Log.Info(fmt.Sprintf("banned account login attempt  account=%s", accountName))
		sendLoginResult(sess, loginBanned, 0)
		return
	}

	if err := deps.AccountRepo.TouchLastActive(ctx, accountName); err != nil {
		deps.Log.Error("last-active update failed", zap.Error(err))
	}

	sess.AccountName = accountName
	sess.Overseer = account.OverseerID
	sess.SetState(packet.StateAuthenticated)

	// Seeds the balance for a first-time overseer.
	credits := deps.Treasury.Balance(world.OwnerID(account.OverseerID))

	sendLoginResult(sess, loginOK, credits)
	deps.Log.Info(fmt.Sprintf("login ok  account=%s  overseer=%d  session=%d",
		accountName, account.OverseerID, sess.ID))
}

func sendLoginResult(sess *net.Session, code byte, credits int64) {
	w := packet.NewWriterWithOpcode(packet.S_OPCODE_LOGIN_RESULT)
	w.WriteC(code)
	w.WriteQ(credits)
	sess.Send(w.Bytes())
}
