package nextcloud

import (
	"context"
	"crypto/tls"
	"encoding/xml"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Directory is the remote user directory consumed by the sync engine.
// Every call either succeeds or returns an error; *APIError signals a
// rejection by the provisioning API itself.
type Directory interface {
	// ListUsers returns the usernames of all accounts on the instance.
	ListUsers(ctx context.Context) ([]string, error)
	// GetUser returns the full remote state of one account.
	GetUser(ctx context.Context, username string) (User, error)
	// CreateUser creates a new account.
	CreateUser(ctx context.Context, req CreateRequest) error
	// EditUser updates a single attribute (see the Key* constants).
	EditUser(ctx context.Context, username, key, value string) error
	// EnableUser re-enables a disabled account.
	EnableUser(ctx context.Context, username string) error
	// DisableUser disables an account without deleting it.
	DisableUser(ctx context.Context, username string) error
	// DeleteUser removes an account permanently.
	DeleteUser(ctx context.Context, username string) error
	// ListGroups returns all group IDs on the instance.
	ListGroups(ctx context.Context) ([]string, error)
	// CreateGroup creates a group.
	CreateGroup(ctx context.Context, group string) error
	// AddUserToGroup adds an account to a group.
	AddUserToGroup(ctx context.Context, username, group string) error
	// RemoveUserFromGroup removes an account from a group.
	RemoveUserFromGroup(ctx context.Context, username, group string) error
	// PromoteSubadmin makes an account group admin of a group.
	PromoteSubadmin(ctx context.Context, username, group string) error
	// DemoteSubadmin revokes group admin rights for a group.
	DemoteSubadmin(ctx context.Context, username, group string) error
}

// Client talks to the Nextcloud OCS provisioning API v1.
type Client struct {
	baseURL  string
	user     string
	password string
	http     *http.Client
}

var _ Directory = (*Client)(nil)

// NewClient creates a provisioning API client from the configuration.
func NewClient(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("nextcloud url is not configured")
	}
	if cfg.AdminUser == "" || cfg.AdminPass == "" {
		return nil, fmt.Errorf("nextcloud admin credentials are not configured")
	}

	// People paste the URL straight from the browser; accept any of the
	// common spellings and normalize to a scheme-qualified base.
	base := strings.TrimRight(cfg.URL, "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	// Strict transport timeouts so a single stuck call cannot hang a run.
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &Client{
		baseURL:  base,
		user:     cfg.AdminUser,
		password: cfg.AdminPass,
		http: &http.Client{
			Transport: transport,
			Timeout:   timeoutDuration,
		},
	}, nil
}

// do performs one API call and decodes the OCS envelope. A non-100 OCS
// statuscode is returned as *APIError.
func (c *Client) do(ctx context.Context, method, path string, form url.Values) (*ocsData, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.user, c.password)
	req.Header.Set("OCS-APIRequest", "true")
	req.Header.Set("Accept-Language", "en")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response for %s %s: %w", method, path, err)
	}

	var env ocsEnvelope
	if err := xml.Unmarshal(raw, &env); err != nil {
		// Not an OCS envelope at all: wrong URL, proxy page, auth wall.
		return nil, fmt.Errorf("unexpected response for %s %s (http %d): %w", method, path, resp.StatusCode, err)
	}

	if env.Meta.StatusCode != ocsStatusOK {
		return nil, &APIError{StatusCode: env.Meta.StatusCode, Message: env.Meta.Message}
	}
	return &env.Data, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]string, error) {
	data, err := c.do(ctx, http.MethodGet, "/ocs/v1.php/cloud/users", nil)
	if err != nil {
		return nil, err
	}
	return data.Users.Element, nil
}

// GetUser fetches account details plus group and subadmin memberships.
// The memberships live behind their own endpoints, so this is three calls.
func (c *Client) GetUser(ctx context.Context, username string) (User, error) {
	data, err := c.do(ctx, http.MethodGet, "/ocs/v1.php/cloud/users/"+url.PathEscape(username), nil)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:          username,
		DisplayName: strings.TrimSpace(data.DisplayName),
		Email:       strings.TrimSpace(data.Email),
		Quota:       strings.TrimSpace(data.Quota.Quota),
		Enabled:     data.Enabled == "1" || data.Enabled == "true",
	}

	groups, err := c.userGroups(ctx, username)
	if err != nil {
		return User{}, err
	}
	user.Groups = groups

	subadmin, err := c.userSubadmins(ctx, username)
	if err != nil {
		return User{}, err
	}
	user.Subadmin = subadmin

	return user, nil
}

func (c *Client) userGroups(ctx context.Context, username string) ([]string, error) {
	data, err := c.do(ctx, http.MethodGet, "/ocs/v1.php/cloud/users/"+url.PathEscape(username)+"/groups", nil)
	if err != nil {
		return nil, err
	}
	return data.Groups.Element, nil
}

func (c *Client) userSubadmins(ctx context.Context, username string) ([]string, error) {
	data, err := c.do(ctx, http.MethodGet, "/ocs/v1.php/cloud/users/"+url.PathEscape(username)+"/subadmins", nil)
	if err != nil {
		return nil, err
	}
	return data.Element, nil
}

func (c *Client) CreateUser(ctx context.Context, req CreateRequest) error {
	form := url.Values{}
	form.Set("userid", req.Username)
	form.Set("password", req.Password)
	form.Set("displayName", req.DisplayName)
	form.Set("email", req.Email)
	if req.Quota != "" {
		form.Set("quota", req.Quota)
	}
	if req.Language != "" {
		form.Set("language", req.Language)
	}
	for _, group := range req.Groups {
		form.Add("groups[]", group)
	}
	for _, group := range req.Subadmin {
		form.Add("subadmin[]", group)
	}

	_, err := c.do(ctx, http.MethodPost, "/ocs/v1.php/cloud/users", form)
	return err
}

func (c *Client) EditUser(ctx context.Context, username, key, value string) error {
	form := url.Values{}
	form.Set("key", key)
	form.Set("value", value)
	_, err := c.do(ctx, http.MethodPut, "/ocs/v1.php/cloud/users/"+url.PathEscape(username), form)
	return err
}

func (c *Client) EnableUser(ctx context.Context, username string) error {
	_, err := c.do(ctx, http.MethodPut, "/ocs/v1.php/cloud/users/"+url.PathEscape(username)+"/enable", nil)
	return err
}

func (c *Client) DisableUser(ctx context.Context, username string) error {
	_, err := c.do(ctx, http.MethodPut, "/ocs/v1.php/cloud/users/"+url.PathEscape(username)+"/disable", nil)
	return err
}

func (c *Client) DeleteUser(ctx context.Context, username string) error {
	_, err := c.do(ctx, http.MethodDelete, "/ocs/v1.php/cloud/users/"+url.PathEscape(username), nil)
	return err
}

func (c *Client) ListGroups(ctx context.Context) ([]string, error) {
	data, err := c.do(ctx, http.MethodGet, "/ocs/v1.php/cloud/groups", nil)
	if err != nil {
		return nil, err
	}
	return data.Groups.Element, nil
}

func (c *Client) CreateGroup(ctx context.Context, group string) error {
	form := url.Values{}
	form.Set("groupid", group)
	_, err := c.do(ctx, http.MethodPost, "/ocs/v1.php/cloud/groups", form)
	return err
}

func (c *Client) AddUserToGroup(ctx context.Context, username, group string) error {
	form := url.Values{}
	form.Set("groupid", group)
	_, err := c.do(ctx, http.MethodPost, "/ocs/v1.php/cloud/users/"+url.PathEscape(username)+"/groups", form)
	return err
}

// RemoveUserFromGroup passes the group in the query string; the API does not
// read a body on DELETE.
func (c *Client) RemoveUserFromGroup(ctx context.Context, username, group string) error {
	path := "/ocs/v1.php/cloud/users/" + url.PathEscape(username) + "/groups?groupid=" + url.QueryEscape(group)
	_, err := c.do(ctx, http.MethodDelete, path, nil)
	return err
}

func (c *Client) PromoteSubadmin(ctx context.Context, username, group string) error {
	form := url.Values{}
	form.Set("groupid", group)
	_, err := c.do(ctx, http.MethodPost, "/ocs/v1.php/cloud/users/"+url.PathEscape(username)+"/subadmins", form)
	return err
}

func (c *Client) DemoteSubadmin(ctx context.Context, username, group string) error {
	path := "/ocs/v1.php/cloud/users/" + url.PathEscape(username) + "/subadmins?groupid=" + url.QueryEscape(group)
	_, err := c.do(ctx, http.MethodDelete, path, nil)
	return err
}
