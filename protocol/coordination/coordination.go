/*
Package coordination implements the mediator side of the coordinate-mediation
protocol. A mediate request creates the account of the caller, and after that
the caller maintains its keylist with keylist updates and queries. The caller
is identified by the authentication key of the inbound message, which the
transport layer has verified.

MediateRequest has its own entry point because granting mediation needs the
signing key, the DID document and the grant content from the caller.
*/
package coordination

import (
	"context"
	"fmt"

	"github.com/findy-network/findy-mediator/agent/didcomm"
	"github.com/findy-network/findy-mediator/agent/pltype"
	"github.com/findy-network/findy-mediator/agent/storage/api"
	"github.com/findy-network/findy-mediator/method"
	cm "github.com/findy-network/findy-mediator/std/coordinatemediation"
	"github.com/findy-network/findy-mediator/std/decorator"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// Packet is the inbound message with the identity of its sender.
type Packet struct {
	Message cm.Message
	AuthKey string
	Storage api.Mediator
}

type HandlerFunc func(ctx context.Context, packet Packet) (cm.Message, error)

var handlers = map[string]HandlerFunc{
	pltype.HandlerKeylistQuery:  handleKeylistQuery,
	pltype.HandlerKeylistUpdate: handleKeylistUpdate,
}

// Handle processes the coordination message of the already registered
// caller. The mediator has no handler for the other kinds and
// didcomm.ErrNotImplemented is returned for them, MediateRequest included.
func Handle(ctx context.Context, packet Packet) (om cm.Message, err error) {
	kind := packet.Message.MsgType().Kind
	h, ok := handlers[kind]
	if !ok {
		glog.Warningf("no handler for %s from %s", kind, packet.AuthKey)
		return nil, fmt.Errorf("%w: coordinate-mediation %s",
			didcomm.ErrNotImplemented, kind)
	}
	glog.V(3).Infoln("handling", kind, "from", packet.AuthKey)
	return h(ctx, packet)
}

// MediateRequest is the input of HandleMediateRequest.
type MediateRequest struct {
	Request    *cm.MediateRequest
	AuthKey    string
	SigningKey string
	DIDDoc     []byte
	Grant      cm.GrantContent
}

// HandleMediateRequest creates an account for the caller and returns a grant
// with the given content. If the account cannot be created, e.g. it exists
// already, a deny is returned.
func HandleMediateRequest(ctx context.Context, storage api.Mediator, req MediateRequest) cm.Message {
	var thread *decorator.Thread
	if req.Request != nil {
		thread = decorator.ReplyTo(req.Request.ID())
	}
	err := storage.CreateAccount(ctx, req.AuthKey, req.SigningKey, req.DIDDoc)
	if err != nil {
		glog.Errorf("mediation denied for %s: %v", req.AuthKey, err)
		return cm.NewMediateDeny(thread)
	}
	glog.V(1).Infoln("mediation granted for", req.AuthKey)
	return cm.NewMediateGrant(req.Grant, thread)
}

func handleKeylistQuery(ctx context.Context, packet Packet) (om cm.Message, err error) {
	defer err2.Handle(&err, "keylist query")

	if q := packet.Message.(*cm.KeylistQuery); q.Paginate != nil {
		glog.V(3).Infof("keylist query pagination (%d, %d) ignored",
			q.Paginate.Limit, q.Paginate.Offset)
	}
	keys := try.To1(packet.Storage.ListRecipientKeys(ctx, packet.AuthKey))
	return cm.NewKeylist(keys, replyTo(packet.Message)), nil
}

// handleKeylistUpdate processes the items in order. The failure of one item
// doesn't stop the others, and it's reported as server_error of the item.
func handleKeylistUpdate(ctx context.Context, packet Packet) (cm.Message, error) {
	update := packet.Message.(*cm.KeylistUpdate)

	updated := make([]cm.KeylistUpdateResponseItem, 0, len(update.Updates))
	for _, item := range update.Updates {
		updated = append(updated, cm.KeylistUpdateResponseItem{
			RecipientKey: item.RecipientKey,
			Action:       item.Action,
			Result:       updateKey(ctx, packet, item),
		})
	}
	return cm.NewKeylistUpdateResponse(updated, replyTo(update)), nil
}

func updateKey(ctx context.Context, packet Packet, item cm.KeylistUpdateItem) cm.Result {
	keyB58 := method.NormalizeKey(item.RecipientKey)

	var err error
	switch item.Action {
	case cm.ActionAdd:
		err = packet.Storage.AddRecipient(ctx, packet.AuthKey, keyB58)
	case cm.ActionRemove:
		err = packet.Storage.RemoveRecipient(ctx, packet.AuthKey, keyB58)
	default:
		err = fmt.Errorf("unknown action %q", item.Action)
	}
	if err != nil {
		glog.Errorf("keylist %s %s: %v", item.Action, keyB58, err)
		return cm.ResultServerError
	}
	glog.V(5).Infoln("keylist", item.Action, keyB58)
	return cm.ResultSuccess
}

func replyTo(m didcomm.MessageHdr) *decorator.Thread {
	if m == nil {
		return nil
	}
	return decorator.ReplyTo(m.ID())
}
