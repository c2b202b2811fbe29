package view

import "html/template"

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Top 10 Reddit Posts</title></head>
<body>
<h1>Welcome to Top 10 Reddit Posts</h1>
<form method="post" action="/search">
  <label for="feed">Subreddit:</label>
  <input type="text" id="feed" name="feed" placeholder="name of subreddit" value="{{.Query}}">
  <button type="submit">Search</button>
</form>
<div style="display:flex;flex-direction:row;margin-top:30px">
  <div style="flex:2">
    <h2>Top 10 posts on "{{.Query}}"</h2>
    {{if eq .State "unavailable"}}
    <p>Unable to load posts right now.</p>
    {{else if .Results}}
    <ul>
      {{range .Results}}
      <li>
        {{.Title}} | Score: {{.Score}} | <a href="{{.CommentsURL}}">Comments</a>
        <form method="post" action="/favorites/{{.ID}}/toggle" style="display:inline">
          <button type="submit">{{if .Favorite}}&#9829;{{else}}&#9825;{{end}}</button>
        </form>
        <hr>
      </li>
      {{end}}
    </ul>
    {{else}}
    <p>No post found</p>
    {{end}}
  </div>
  <div style="flex:1;margin-left:2em">
    <h2>Favorite posts</h2>
    {{if not .Ready}}<p><em>Loading favorites…</em></p>{{end}}
    <ul>
      {{range .Favorites}}
      <li>
        {{.Title}} | Score: {{.Score}} | <a href="{{.CommentsURL}}">Comments</a>
        <form method="post" action="/favorites/{{.ID}}/toggle" style="display:inline">
          <button type="submit">&#9829;</button>
        </form>
        <hr>
      </li>
      {{end}}
    </ul>
    <p><a href="/chart">Score charts</a></p>
  </div>
</div>
</body>
</html>
`))
