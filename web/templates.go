package web

const pageTpl = `<!doctype html>
<html lang="en">
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width, initial-scale=1" />
<title>posterrow</title>
<style>
body{background:#111;color:#fff;font-family:system-ui,-apple-system,Segoe UI,Roboto;margin:0;padding:0 20px}
header{display:flex;justify-content:space-between;align-items:center;padding:12px 0}
.row{margin-left:20px}
.row__posters{display:flex;overflow-y:hidden;overflow-x:scroll;padding:20px}
.row__posters::-webkit-scrollbar{display:none}
.row__posters form{margin:0}
.row__posters button{background:none;border:0;padding:0;cursor:pointer}
.row__poster{object-fit:contain;width:100%;max-height:100px;margin-right:10px;transition:transform 450ms}
.row__poster:hover{transform:scale(1.08)}
.row__posterLarge{max-height:250px}
.row__posterLarge:hover{transform:scale(1.09)}
.row__controls{display:flex;gap:8px;font-size:12px;color:#aaa}
</style>
<header>
  <strong>posterrow</strong>
  <form method="post" action="/refresh"><button type="submit">Refresh</button></form>
</header>
{{range .}}{{template "row" .}}{{end}}
</html>
{{define "row"}}
<div class="row" id="{{.Slug}}">
  <h2>{{.Title}}</h2>
  <div class="row__controls">
    <form method="post" action="/rows/{{.Slug}}/source">
      <input name="fetch_url" value="{{.FetchSource}}" size="40" />
      <button type="submit">Load</button>
    </form>
    <form method="post" action="/rows/{{.Slug}}/layout">
      <input type="hidden" name="large" value="{{if .Large}}false{{else}}true{{end}}" />
      <button type="submit">{{if .Large}}Compact{{else}}Large{{end}}</button>
    </form>
  </div>
  <div class="row__posters">
  {{$slug := .Slug}}
  {{range .Posters}}
    <form method="post" action="/rows/{{$slug}}/click/{{.Key}}">
      <button type="submit"><img data-key="{{.Key}}" class="{{.Class}}" src="{{.Src}}" alt="{{.Alt}}" /></button>
    </form>
  {{end}}
  </div>
  {{with .Trailer}}
  <iframe class="row__trailer" data-video-id="{{.VideoID}}" width="{{.Width}}" height="{{.Height}}"
          src="{{embedURL .VideoID}}" allow="autoplay; encrypted-media" allowfullscreen></iframe>
  {{end}}
</div>
{{end}}
`
