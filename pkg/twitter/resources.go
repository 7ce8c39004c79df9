package twitter

import "context"

// UserAPI looks up user profiles.
type UserAPI struct{ c *Client }

// GetUserByScreenName fetches a user by handle. Params: screenName.
func (a *UserAPI) GetUserByScreenName(ctx context.Context, params map[string]any) (any, error) {
	return a.c.call(ctx, opUserByScreenName, params)
}

// GetUserByRestId fetches a user by numeric id. Params: userId.
func (a *UserAPI) GetUserByRestId(ctx context.Context, params map[string]any) (any, error) {
	return a.c.call(ctx, opUserByRestID, params)
}

// GetUsersByRestIds fetches several users. Params: userIds.
func (a *UserAPI) GetUsersByRestIds(ctx context.Context, params map[string]any) (any, error) {
	return a.c.call(ctx, opUsersByRestIDs, params)
}

// TweetAPI reads tweets and timelines.
type TweetAPI struct{ c *Client }

func (a *TweetAPI) GetTweetDetail(ctx context.Context, params map[string]any) (any, error) {
	return a.c.call(ctx, opTweetDetail, params)
}

func (a *TweetAPI) GetUserTweets(ctx context.Context, params map[string]any) (any, error) {
	return a.c.call(ctx, opUserTweets, params)
}

func (a *TweetAPI) GetUserTweetsAndReplies(ctx context.Context, params map[string]any) (any, error) {
	return a.c.call(ctx, opUserTweetsAndReplies, params)
}

func (a *TweetAPI) GetUserMedia(ctx context.Context, params map[string]any) (any, error) {
	return a.c.call(ctx, opUserMedia, params)
}

func (a *TweetAPI) GetLikes(ctx context.Context, params map[string]any) (any, error) {
	return a.c.call(ctx, opLikes, params)
}

func (a *TweetAPI) GetHomeTimeline(ctx context.Context, params map[string]any) (any, error) {
	return a.c.call(ctx, opHomeTimeline, params)
}

func (a *TweetAPI) GetHomeLatestTimeline(ctx context.Context, params map[string]any) (any, error) {
	return a.c.call(ctx, opHomeLatestTimeline, params)
}

func (a *TweetAPI) GetSearchTimeline(ctx context.Context, params map[string]any) (any, error) {
	return a.c.call(ctx, opSearchTimeline, params)
}

func (a *TweetAPI) GetBookmarks(ctx context.Context, params map[string]any) (any, error) {
	return a.c.call(ctx, opBookmarks, params)
}

func (a *TweetAPI) GetListLatestTweetsTimeline(ctx context.Context, params map[string]any) (any, error) {
	return a.c.call(ctx, opListLatestTweetsTimeline, params)
}

// UserListAPI lists users related to a user or tweet.
type UserListAPI struct{ c *Client }

func (a *UserListAPI) GetFollowers(ctx context.Context, params map[string]any) (any, error) {
	return a.c.call(ctx, opFollowers, params)
}

func (a *UserListAPI) GetFollowing(ctx context.Context, params map[string]any) (any, error) {
	return a.c.call(ctx, opFollowing, params)
}

func (a *UserListAPI) GetFavoriters(ctx context.Context, params map[string]any) (any, error) {
	return a.c.call(ctx, opFavoriters, params)
}

func (a *UserListAPI) GetRetweeters(ctx context.Context, params map[string]any) (any, error) {
	return a.c.call(ctx, opRetweeters, params)
}

// PostAPI performs writes through the GraphQL surface.
type PostAPI struct{ c *Client }

// PostCreateTweet publishes a tweet. Params: tweetText, inReplyToTweetId,
// attachmentUrl.
func (a *PostAPI) PostCreateTweet(ctx context.Context, params map[string]any) (any, error) {
	return a.c.call(ctx, opCreateTweet, params)
}

func (a *PostAPI) PostDeleteTweet(ctx context.Context, params map[string]any) (any, error) {
	return a.c.call(ctx, opDeleteTweet, params)
}

func (a *PostAPI) PostCreateRetweet(ctx context.Context, params map[string]any) (any, error) {
	return a.c.call(ctx, opCreateRetweet, params)
}

func (a *PostAPI) PostDeleteRetweet(ctx context.Context, params map[string]any) (any, error) {
	return a.c.call(ctx, opDeleteRetweet, params)
}

func (a *PostAPI) PostFavoriteTweet(ctx context.Context, params map[string]any) (any, error) {
	return a.c.call(ctx, opFavoriteTweet, params)
}

func (a *PostAPI) PostUnfavoriteTweet(ctx context.Context, params map[string]any) (any, error) {
	return a.c.call(ctx, opUnfavoriteTweet, params)
}

// V11API covers the v1.1 REST calls that have no GraphQL equivalent.
type V11API struct{ c *Client }

// PostCreateFriendships follows a user. Params: userId or screenName.
func (a *V11API) PostCreateFriendships(ctx context.Context, params map[string]any) (any, error) {
	return a.c.form(ctx, "friendships/create", "/1.1/friendships/create.json", friendshipRename, params)
}

// PostDestroyFriendships unfollows a user. Params: userId or screenName.
func (a *V11API) PostDestroyFriendships(ctx context.Context, params map[string]any) (any, error) {
	return a.c.form(ctx, "friendships/destroy", "/1.1/friendships/destroy.json", friendshipRename, params)
}
