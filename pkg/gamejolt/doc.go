// Package gamejolt is a client for the Game Jolt game API.
//
// Every request is a signed HTTP GET. The Client turns an endpoint and an
// ordered list of "key=value" queries into
//
//	https://<host>/api/game/<version>/<endpoint>?game_id=<id>&<queries>&signature=<md5>
//
// dispatches it through a Transport, unwraps the {"response": {...}}
// envelope and decodes the typed records inside it.
//
// Most callers want a Session on top of the Client. A Session owns the
// player's credential, gates user and trophy operations on a successful
// Authenticate and emits events once the server has confirmed a change:
//
//	client, err := gamejolt.NewClient(cfg, gamejolt.NewHTTPTransport(gamejolt.DefaultHTTPTransportConfig))
//	if err != nil {
//	    return err
//	}
//	session := gamejolt.NewSession(client)
//	session.HandleTrophyEvent(func(ctx context.Context, n gamejolt.TrophyNotification) {
//	    fmt.Println(n.Kind, n.TrophyID)
//	})
//
//	if err := session.Authenticate(ctx, "alice", "tok123", false); err != nil {
//	    return err
//	}
//	if err := session.GrantTrophy(ctx, 1234); err != nil {
//	    return err
//	}
//
// Errors are typed. A failure below the application layer is a
// *TransportError, a server-side rejection or an unknown enum label is an
// *ApplicationError, an operation on an unauthenticated Session is an
// *AuthorizationError and a bad Config is a *ConfigurationError.
// Nothing is retried.
package gamejolt
