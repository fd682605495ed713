package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v5"
	"google.golang.org/api/option"

	"github.com/scamwatch/backend/internal/models"
)

type contextKey string

const (
	UserIDKey   contextKey = "userID"
	UserRoleKey contextKey = "userRole"
)

// UserResolver maps verified token identities to application users.
type UserResolver interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByFirebaseUID(ctx context.Context, uid string) (*models.User, error)
}

// FirebaseAuthConfig configures server-side verification of Firebase ID tokens.
type FirebaseAuthConfig struct {
	ProjectID       string
	CredentialsJSON string
}

// NewFirebaseAuthClient initializes the Firebase Admin SDK auth client.
// Returns nil without error when no project is configured, in which case
// only locally-issued JWTs are accepted.
func NewFirebaseAuthClient(ctx context.Context, cfg FirebaseAuthConfig) (*firebaseauth.Client, error) {
	if cfg.ProjectID == "" && cfg.CredentialsJSON == "" {
		return nil, nil
	}

	var opts []option.ClientOption
	if cfg.CredentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, err
	}
	return app.Auth(ctx)
}

// Auth validates the bearer token on the request: a Firebase ID token when
// the Firebase client is configured, falling back to locally-issued JWTs.
// On success the user's ID and role are placed on the request context.
func Auth(firebaseClient *firebaseauth.Client, users UserResolver, jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Authorization header required"))
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Invalid authorization header format"))
				return
			}
			tokenString := parts[1]

			if firebaseClient != nil {
				if decoded, err := firebaseClient.VerifyIDToken(r.Context(), tokenString); err == nil {
					user, err := users.GetByFirebaseUID(r.Context(), decoded.UID)
					if err != nil {
						log.Printf("[Auth] firebase user lookup failed uid=%s err=%v", decoded.UID, err)
						writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
						return
					}
					next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
					return
				}
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Invalid or expired token"))
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Invalid token claims"))
				return
			}
			userID, ok := claims["user_id"].(string)
			if !ok {
				writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Invalid user ID in token"))
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
				return
			}

			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
		})
	}
}

// RequireAdmin rejects requests whose authenticated user is not an admin.
// Must be mounted inside Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUserRole(r.Context()) != models.RoleAdmin {
			writeJSON(w, http.StatusForbidden, models.NewErrorResponse("Forbidden: admin access required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func withUser(ctx context.Context, user *models.User) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, user.ID)
	return context.WithValue(ctx, UserRoleKey, user.Role)
}

// GetUserID extracts the authenticated user ID from context.
func GetUserID(ctx context.Context) string {
	userID, ok := ctx.Value(UserIDKey).(string)
	if !ok {
		return ""
	}
	return userID
}

// GetUserRole extracts the authenticated user's role from context.
func GetUserRole(ctx context.Context) string {
	role, ok := ctx.Value(UserRoleKey).(string)
	if !ok {
		return ""
	}
	return role
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
