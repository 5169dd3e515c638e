package api

import (
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	mockdb "github.com/quantfold/optionwheel/db/mock"
	db "github.com/quantfold/optionwheel/db/sqlc"
	"github.com/quantfold/optionwheel/util"
)

// registeredUser builds a stored user plus the clear API key that matches it.
func registeredUser(t *testing.T, expiredAt time.Time) (db.User, string) {
	prefix, secret, err := util.GenerateToken()
	require.NoError(t, err)

	apiKey := fmt.Sprintf("%s.%s", prefix, secret)
	hashed, err := bcrypt.GenerateFromPassword([]byte(apiKey), bcrypt.MinCost)
	require.NoError(t, err)

	user := db.User{
		EmailAddress: util.RandomEmail(),
		Prefix:       prefix,
		Token:        string(hashed),
		GeneratedAt:  time.Now().Format(Layout2),
		ExpiredAt:    expiredAt.Format(Layout2),
	}
	return user, apiKey
}

func TestAuthMiddleware(t *testing.T) {
	user, apiKey := registeredUser(t, time.Now().AddDate(0, 6, 0))
	expiredUser, expiredKey := registeredUser(t, time.Now().AddDate(0, 0, -1))

	testCases := []struct {
		name          string
		setupAuth     func(t *testing.T, request *http.Request)
		buildStubs    func(store *mockdb.MockStore)
		checkResponse func(t *testing.T, recorder *httptest.ResponseRecorder)
	}{
		{
			name: "OK",
			setupAuth: func(t *testing.T, request *http.Request) {
				request.Header.Set(authorizationHeaderKey, fmt.Sprintf("%s %s", authorizationTypeBearer, apiKey))
			},
			buildStubs: func(store *mockdb.MockStore) {
				store.EXPECT().GetUser(gomock.Any(), gomock.Eq(user.Prefix)).Times(1).Return(user, nil)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
			},
		},
		{
			name:      "NO_AUTHORIZATION",
			setupAuth: func(t *testing.T, request *http.Request) {},
			buildStubs: func(store *mockdb.MockStore) {
				store.EXPECT().GetUser(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusUnauthorized, recorder.Code)
			},
		},
		{
			name: "UNSUPPORTED_AUTHORIZATION",
			setupAuth: func(t *testing.T, request *http.Request) {
				request.Header.Set(authorizationHeaderKey, fmt.Sprintf("basic %s", apiKey))
			},
			buildStubs: func(store *mockdb.MockStore) {
				store.EXPECT().GetUser(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusUnauthorized, recorder.Code)
			},
		},
		{
			name: "INVALID_AUTHORIZATION_FORMAT",
			setupAuth: func(t *testing.T, request *http.Request) {
				request.Header.Set(authorizationHeaderKey, apiKey)
			},
			buildStubs: func(store *mockdb.MockStore) {
				store.EXPECT().GetUser(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusUnauthorized, recorder.Code)
			},
		},
		{
			name: "WRONG_PREFIX_LENGTH",
			setupAuth: func(t *testing.T, request *http.Request) {
				request.Header.Set(authorizationHeaderKey, fmt.Sprintf("%s %s", authorizationTypeBearer, "short.RGbV3hb3LEwYohYW"))
			},
			buildStubs: func(store *mockdb.MockStore) {
				store.EXPECT().GetUser(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusUnauthorized, recorder.Code)
			},
		},
		{
			name: "USER_NOT_FOUND",
			setupAuth: func(t *testing.T, request *http.Request) {
				request.Header.Set(authorizationHeaderKey, fmt.Sprintf("%s %s", authorizationTypeBearer, apiKey))
			},
			buildStubs: func(store *mockdb.MockStore) {
				store.EXPECT().GetUser(gomock.Any(), gomock.Eq(user.Prefix)).Times(1).Return(db.User{}, sql.ErrNoRows)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusNotFound, recorder.Code)
			},
		},
		{
			name: "EXPIRED_TOKEN",
			setupAuth: func(t *testing.T, request *http.Request) {
				request.Header.Set(authorizationHeaderKey, fmt.Sprintf("%s %s", authorizationTypeBearer, expiredKey))
			},
			buildStubs: func(store *mockdb.MockStore) {
				store.EXPECT().GetUser(gomock.Any(), gomock.Eq(expiredUser.Prefix)).Times(1).Return(expiredUser, nil)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusUnauthorized, recorder.Code)
			},
		},
		{
			name: "WRONG_SECRET",
			setupAuth: func(t *testing.T, request *http.Request) {
				request.Header.Set(authorizationHeaderKey, fmt.Sprintf("%s %s.%s", authorizationTypeBearer, user.Prefix, "notTheRealSecret"))
			},
			buildStubs: func(store *mockdb.MockStore) {
				store.EXPECT().GetUser(gomock.Any(), gomock.Eq(user.Prefix)).Times(1).Return(user, nil)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusUnauthorized, recorder.Code)
			},
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			store := mockdb.NewMockStore(ctrl)
			test.buildStubs(store)

			server := newTestServer(t, store)
			server.router.GET("/auth", server.authentication, func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{})
			})

			recorder := httptest.NewRecorder()
			request, err := http.NewRequest(http.MethodGet, "/auth", nil)
			require.NoError(t, err)

			test.setupAuth(t, request)
			server.router.ServeHTTP(recorder, request)
			test.checkResponse(t, recorder)
		})
	}
}
