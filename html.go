package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

// Simple HTML clients for the quiz protocol

const homeHTML = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Quizbox</title>
<style>
  body { font-family: system-ui, -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; margin: 2rem; }
  a { display: block; margin: 0.5rem 0; font-size: 1.2rem; }
</style>
</head>
<body>
<h1>Quizbox</h1>
<a href="host">Host a game</a>
<a href="play">Join a game</a>
</body>
</html>
`

const hostHTML = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Quizbox Host</title>
<style>
  body { font-family: system-ui, -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; margin: 2rem; }
  #pin { font-size: 2rem; letter-spacing: 0.2rem; }
  #players li, #board li { padding: 0.25rem 0; border-bottom: 1px solid #ddd; }
  button { font-size: 1rem; padding: 0.5rem 1rem; margin: 0.5rem 0.5rem 0.5rem 0; }
  ul { padding: 0; list-style: none; }
</style>
</head>
<body>
<h1>Host</h1>
<div id="status">Connecting…</div>
<div id="pin"></div>
<img id="qr" alt="" hidden>
<div>
  <button id="create">Create game</button>
  <button id="start" hidden>Start game</button>
  <button id="next" hidden>Next question</button>
</div>
<div id="question"></div>
<h2>Players</h2>
<ul id="players"></ul>
<h2>Leaderboard</h2>
<ul id="board"></ul>

<script>
(function() {
  const el = function(id) { return document.getElementById(id); };

  let pin = '';

  const base = location.pathname.replace(/\/host$/, '');
  const proto = (location.protocol === 'https:') ? 'wss://' : 'ws://';
  const ws = new WebSocket(proto + location.host + base + '/ws');

  ws.onopen = function() { el('status').textContent = 'Connected.'; };
  ws.onclose = function() { el('status').textContent = 'Disconnected.'; };

  el('create').onclick = function() {
    ws.send(JSON.stringify({ type: 'create_game' }));
  };
  el('start').onclick = function() {
    ws.send(JSON.stringify({ type: 'start_game', pin: pin }));
  };
  el('next').onclick = function() {
    ws.send(JSON.stringify({ type: 'next_question', pin: pin }));
  };

  function renderBoard(leaderboard) {
    el('board').innerHTML = '';
    leaderboard.forEach(function(entry) {
      const li = document.createElement('li');
      li.textContent = entry.nickname + ' — ' + entry.score;
      el('board').appendChild(li);
    });
  }

  ws.onmessage = function(event) {
    const msg = JSON.parse(event.data);

    switch (msg.type) {
    case 'game_created':
      pin = msg.pin;
      el('pin').textContent = 'PIN: ' + pin;
      el('qr').src = base + '/play/' + pin + '/qr';
      el('qr').hidden = false;
      el('create').hidden = true;
      el('start').hidden = false;
      break;
    case 'update_player_list':
      el('players').innerHTML = '';
      msg.players.forEach(function(name) {
        const li = document.createElement('li');
        li.textContent = name;
        el('players').appendChild(li);
      });
      break;
    case 'player_left':
      el('status').textContent = msg.nickname + ' left.';
      break;
    case 'display_question':
      el('start').hidden = true;
      el('next').hidden = false;
      el('qr').hidden = true;
      el('question').textContent = 'Q' + (msg.question_index + 1) + '/' + msg.question_total +
        ': ' + msg.question_text + ' [' + msg.options.join(' | ') + ']';
      break;
    case 'show_round_results':
      el('question').textContent = 'Correct answer: option ' + (msg.correct_answer + 1);
      renderBoard(msg.leaderboard);
      break;
    case 'game_over':
      el('question').textContent = 'Game over!';
      el('next').hidden = true;
      renderBoard(msg.leaderboard);
      break;
    }
  };
})();
</script>
</body>
</html>
`

const playerHTML = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Quizbox</title>
<style>
  body { font-family: system-ui, -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; margin: 2rem; }
  #options button { display: block; width: 100%; font-size: 1.1rem; padding: 0.75rem; margin: 0.5rem 0; }
  #board li { padding: 0.25rem 0; border-bottom: 1px solid #ddd; }
  input { font-size: 1rem; padding: 0.5rem; margin: 0.25rem 0; }
  ul { padding: 0; list-style: none; }
</style>
</head>
<body>
<h1>Join</h1>
<div id="status">Connecting…</div>
<div id="form">
  <input id="pin" placeholder="Game PIN" inputmode="numeric">
  <input id="nickname" placeholder="Nickname">
  <button id="join">Join</button>
</div>
<div id="question"></div>
<div id="options"></div>
<ul id="board"></ul>

<script>
(function() {
  const el = function(id) { return document.getElementById(id); };

  el('pin').value = new URLSearchParams(location.search).get('pin') || '';

  const base = location.pathname.replace(/\/play$/, '');
  const proto = (location.protocol === 'https:') ? 'wss://' : 'ws://';
  const ws = new WebSocket(proto + location.host + base + '/ws');

  ws.onopen = function() { el('status').textContent = 'Connected.'; };
  ws.onclose = function() { el('status').textContent = 'Disconnected.'; };

  el('join').onclick = function() {
    ws.send(JSON.stringify({
      type: 'join_game',
      pin: el('pin').value.trim(),
      nickname: el('nickname').value.trim()
    }));
  };

  ws.onmessage = function(event) {
    const msg = JSON.parse(event.data);

    switch (msg.type) {
    case 'joined_successfully':
      el('form').hidden = true;
      el('status').textContent = 'Joined as ' + msg.nickname + '. Waiting for the host…';
      break;
    case 'join_error':
    case 'answer_error':
      el('status').textContent = msg.message;
      break;
    case 'display_question':
      el('board').innerHTML = '';
      el('question').textContent = 'Q' + (msg.question_index + 1) + '/' + msg.question_total + ': ' + msg.question_text;
      el('options').innerHTML = '';
      msg.options.forEach(function(option, i) {
        const btn = document.createElement('button');
        btn.textContent = option;
        btn.onclick = function() {
          ws.send(JSON.stringify({
            type: 'submit_answer',
            pin: el('pin').value.trim(),
            answer_index: i,
            question_index: msg.question_index
          }));
        };
        el('options').appendChild(btn);
      });
      break;
    case 'answer_received':
      el('options').innerHTML = '';
      el('status').textContent = 'Answer locked in.';
      break;
    case 'show_round_results':
    case 'game_over':
      el('question').textContent = (msg.type === 'game_over') ? 'Game over!' : 'Results';
      el('options').innerHTML = '';
      el('board').innerHTML = '';
      msg.leaderboard.forEach(function(entry) {
        const li = document.createElement('li');
        li.textContent = entry.nickname + ' — ' + entry.score;
        el('board').appendChild(li);
      });
      break;
    case 'game_closed':
      el('question').textContent = '';
      el('options').innerHTML = '';
      el('status').textContent = msg.message;
      break;
    }
  };
})();
</script>
</body>
</html>
`

func servePage(body string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}
}

func serveHomePage(cfg *Config) httprouter.Handle {
	return servePage(homeHTML)
}

func serveHostPage(cfg *Config) httprouter.Handle {
	return servePage(hostHTML)
}

func servePlayerPage(cfg *Config) httprouter.Handle {
	return servePage(playerHTML)
}

// qrHandler generates a PNG QR code for a game's join URL using go-qrcode.
func qrHandler(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		pin := ps.ByName("pin")
		if pin == "" {
			http.Error(w, "missing game pin", http.StatusBadRequest)
			return
		}

		// Derive scheme (respecting TLS and X-Forwarded-Proto if present).
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		}

		url := scheme + "://" + r.Host + cfg.prefix + "/play?pin=" + pin

		const qrSize = 320 // mobile-friendly size
		png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, "qr generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(png)
	}
}
