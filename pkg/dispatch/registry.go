package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"mercator-hq/courier/pkg/twitter"
)

// InvokeFunc calls one packaged operation on a session client.
type InvokeFunc func(ctx context.Context, client *twitter.Client, params map[string]any) (any, error)

// Method is a packaged method: a caller-visible name bound to one
// operation of one client resource.
type Method struct {
	// Name is the caller-visible method name, e.g. "getUserByScreenName"
	Name string

	// Resource is the client resource the operation belongs to
	Resource string

	// Operation is the platform operation name
	Operation string

	// Invoke performs the call
	Invoke InvokeFunc

	// Empty returns the neutral result used when a decode failure is
	// reclassified as an empty dataset. nil means an empty object.
	Empty func() any
}

// Registry maps method names to packaged methods. It is safe for
// concurrent use.
type Registry struct {
	mu      sync.RWMutex
	methods map[string]*Method
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{methods: make(map[string]*Method)}
}

// DefaultRegistry creates a registry holding every packaged method the
// platform client offers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, m := range defaultMethods() {
		if err := r.Register(m); err != nil {
			panic(fmt.Sprintf("dispatch: default method table: %v", err))
		}
	}
	return r
}

// Register adds a method. Names must be unique.
func (r *Registry) Register(m Method) error {
	if m.Name == "" {
		return errors.New("method name is required")
	}
	if m.Invoke == nil {
		return fmt.Errorf("method %q has no invoke function", m.Name)
	}
	if m.Empty == nil {
		m.Empty = emptyObject
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.methods[m.Name]; exists {
		return fmt.Errorf("method %q already registered", m.Name)
	}
	r.methods[m.Name] = &m
	return nil
}

// Lookup returns the method registered under name.
func (r *Registry) Lookup(name string) (*Method, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.methods[name]
	return m, ok
}

// Methods returns all registered methods sorted by name.
func (r *Registry) Methods() []Method {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Method, 0, len(r.methods))
	for _, m := range r.methods {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the registered method names, sorted.
func (r *Registry) Names() []string {
	methods := r.Methods()
	names := make([]string, len(methods))
	for i, m := range methods {
		names[i] = m.Name
	}
	return names
}

// Len returns the number of registered methods.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.methods)
}

func emptyObject() any { return map[string]any{} }

func emptyList() any { return twitter.EmptyPage() }

// bind builds a Method from a resource accessor and one of its operations.
func bind[R any](name, resource, operation string, accessor func(*twitter.Client) R,
	call func(R, context.Context, map[string]any) (any, error), empty func() any) Method {
	return Method{
		Name:      name,
		Resource:  resource,
		Operation: operation,
		Invoke: func(ctx context.Context, client *twitter.Client, params map[string]any) (any, error) {
			return call(accessor(client), ctx, params)
		},
		Empty: empty,
	}
}

// Resource names.
const (
	ResourceUser     = "user"
	ResourceTweet    = "tweet"
	ResourceUserList = "userList"
	ResourcePost     = "post"
	ResourceV11      = "v11"
)

func defaultMethods() []Method {
	user := (*twitter.Client).User
	tweet := (*twitter.Client).Tweet
	userList := (*twitter.Client).UserList
	post := (*twitter.Client).Post
	v11 := (*twitter.Client).V11

	return []Method{
		bind("getUserByScreenName", ResourceUser, "UserByScreenName", user, (*twitter.UserAPI).GetUserByScreenName, emptyObject),
		bind("getUserByRestId", ResourceUser, "UserByRestId", user, (*twitter.UserAPI).GetUserByRestId, emptyObject),
		bind("getUsersByRestIds", ResourceUser, "UsersByRestIds", user, (*twitter.UserAPI).GetUsersByRestIds, emptyList),

		bind("getTweetDetail", ResourceTweet, "TweetDetail", tweet, (*twitter.TweetAPI).GetTweetDetail, emptyList),
		bind("getUserTweets", ResourceTweet, "UserTweets", tweet, (*twitter.TweetAPI).GetUserTweets, emptyList),
		bind("getUserTweetsAndReplies", ResourceTweet, "UserTweetsAndReplies", tweet, (*twitter.TweetAPI).GetUserTweetsAndReplies, emptyList),
		bind("getUserMedia", ResourceTweet, "UserMedia", tweet, (*twitter.TweetAPI).GetUserMedia, emptyList),
		bind("getLikes", ResourceTweet, "Likes", tweet, (*twitter.TweetAPI).GetLikes, emptyList),
		bind("getHomeTimeline", ResourceTweet, "HomeTimeline", tweet, (*twitter.TweetAPI).GetHomeTimeline, emptyList),
		bind("getHomeLatestTimeline", ResourceTweet, "HomeLatestTimeline", tweet, (*twitter.TweetAPI).GetHomeLatestTimeline, emptyList),
		bind("getSearchTimeline", ResourceTweet, "SearchTimeline", tweet, (*twitter.TweetAPI).GetSearchTimeline, emptyList),
		bind("getBookmarks", ResourceTweet, "Bookmarks", tweet, (*twitter.TweetAPI).GetBookmarks, emptyList),
		bind("getListLatestTweetsTimeline", ResourceTweet, "ListLatestTweetsTimeline", tweet, (*twitter.TweetAPI).GetListLatestTweetsTimeline, emptyList),

		bind("getFollowers", ResourceUserList, "Followers", userList, (*twitter.UserListAPI).GetFollowers, emptyList),
		bind("getFollowing", ResourceUserList, "Following", userList, (*twitter.UserListAPI).GetFollowing, emptyList),
		bind("getFavoriters", ResourceUserList, "Favoriters", userList, (*twitter.UserListAPI).GetFavoriters, emptyList),
		bind("getRetweeters", ResourceUserList, "Retweeters", userList, (*twitter.UserListAPI).GetRetweeters, emptyList),

		bind("postCreateTweet", ResourcePost, "CreateTweet", post, (*twitter.PostAPI).PostCreateTweet, emptyObject),
		bind("postDeleteTweet", ResourcePost, "DeleteTweet", post, (*twitter.PostAPI).PostDeleteTweet, emptyObject),
		bind("postCreateRetweet", ResourcePost, "CreateRetweet", post, (*twitter.PostAPI).PostCreateRetweet, emptyObject),
		bind("postDeleteRetweet", ResourcePost, "DeleteRetweet", post, (*twitter.PostAPI).PostDeleteRetweet, emptyObject),
		bind("postFavoriteTweet", ResourcePost, "FavoriteTweet", post, (*twitter.PostAPI).PostFavoriteTweet, emptyObject),
		bind("postUnfavoriteTweet", ResourcePost, "UnfavoriteTweet", post, (*twitter.PostAPI).PostUnfavoriteTweet, emptyObject),

		bind("postCreateFriendships", ResourceV11, "friendships/create", v11, (*twitter.V11API).PostCreateFriendships, emptyObject),
		bind("postDestroyFriendships", ResourceV11, "friendships/destroy", v11, (*twitter.V11API).PostDestroyFriendships, emptyObject),
	}
}
